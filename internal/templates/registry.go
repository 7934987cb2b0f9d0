// Package templates eier malene: den faste innebygde katalogen og de
// brukerlagde malene som persisteres i nøkkel/verdi-butikken.
package templates

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jonmartinstorm/repokontekst/internal/models"
	"github.com/jonmartinstorm/repokontekst/internal/store"
)

// TemplateError er manglende eller ugyldig mal. Stopper generering,
// men rører aldri jobbstatus.
type TemplateError struct {
	Msg string
}

func (e *TemplateError) Error() string { return e.Msg }

// Now kan byttes i tester.
var Now = time.Now

type Registry struct {
	store   store.Store
	customs map[string]models.Template
}

// NewRegistry laster de egendefinerte malene fra butikken. Korrupt
// eller manglende lagring gir tomt sett – aldri feil.
func NewRegistry(s store.Store) *Registry {
	r := &Registry{store: s, customs: map[string]models.Template{}}

	data, err := s.Get(store.KeyCustomTemplates)
	if err != nil {
		slog.Warn("Klarte ikke lese egendefinerte maler – starter tomt", "error", err)
		return r
	}
	if data == nil {
		return r
	}

	var list []models.Template
	if err := json.Unmarshal(data, &list); err != nil {
		slog.Warn("Korrupte maler i lagring – starter tomt", "error", err)
		return r
	}
	for _, t := range list {
		r.customs[t.ID] = t
	}
	return r
}

// Resolve slår opp en mal blant innebygde og egendefinerte.
func (r *Registry) Resolve(id string) (models.Template, error) {
	for _, t := range Builtins {
		if t.ID == id {
			return t, nil
		}
	}
	if t, ok := r.customs[id]; ok {
		return t, nil
	}
	return models.Template{}, &TemplateError{Msg: fmt.Sprintf("ukjent mal: %q", id)}
}

// UpsertCustom oppretter eller oppdaterer en egendefinert mal.
// Id-kollisjon med en innebygd mal avvises – ingen stille skygging.
func (r *Registry) UpsertCustom(t models.Template) error {
	if t.Name == "" {
		return &TemplateError{Msg: "malen må ha et navn"}
	}
	if len(t.Sections) == 0 {
		return &TemplateError{Msg: "malen må ha minst én seksjon"}
	}
	for _, b := range Builtins {
		if b.ID == t.ID {
			return &TemplateError{Msg: fmt.Sprintf("id %q er opptatt av en innebygd mal", t.ID)}
		}
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = Now()
	}
	if t.Version == "" {
		t.Version = "1.0"
	}

	r.customs[t.ID] = t
	return r.persist()
}

// RemoveCustom sletter en egendefinert mal. Ukjent id er en no-op.
func (r *Registry) RemoveCustom(id string) error {
	if _, ok := r.customs[id]; !ok {
		return nil
	}
	delete(r.customs, id)
	return r.persist()
}

// ListAll gir innebygde først, så egendefinerte sortert på id.
func (r *Registry) ListAll() []models.Template {
	out := make([]models.Template, 0, len(Builtins)+len(r.customs))
	out = append(out, Builtins...)

	ids := make([]string, 0, len(r.customs))
	for id := range r.customs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out = append(out, r.customs[id])
	}
	return out
}

// ExportBundle er filformatet for maleksport.
type ExportBundle struct {
	ExportDate     time.Time         `json:"exportDate"`
	Templates      []models.Template `json:"templates"`
	TotalTemplates int               `json:"totalTemplates"`
	Version        string            `json:"version"`
}

func (r *Registry) Export() ExportBundle {
	all := r.ListAll()
	return ExportBundle{
		ExportDate:     Now(),
		Templates:      all,
		TotalTemplates: len(all),
		Version:        builtinVersion,
	}
}

// persist skriver hele settet etter hver mutasjon. Tomt sett fjerner
// nøkkelen i stedet for å lagre en tom liste.
func (r *Registry) persist() error {
	if len(r.customs) == 0 {
		return r.store.Delete(store.KeyCustomTemplates)
	}

	ids := make([]string, 0, len(r.customs))
	for id := range r.customs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := make([]models.Template, 0, len(ids))
	for _, id := range ids {
		list = append(list, r.customs[id])
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("kunne ikke serialisere maler: %w", err)
	}
	return r.store.Set(store.KeyCustomTemplates, data)
}
