// Package ledger eier jobbhistorikken: hver analyse blir en Job med
// livssyklus, lagret mest-nylig-først og begrenset til de ti siste.
package ledger

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonmartinstorm/repokontekst/internal/models"
	"github.com/jonmartinstorm/repokontekst/internal/store"
)

// MaxJobs er historikkgrensen. Innsetting nummer elleve kaster ut den
// eldste.
const MaxJobs = 10

// Now kan byttes i tester.
var Now = time.Now

type Ledger struct {
	mu    sync.Mutex
	store store.Store
	jobs  []models.Job // mest nylig først
}

// NewLedger laster historikken fra butikken. Korrupt JSON degraderer
// til tom historikk – en ødelagt lagringsfil skal aldri stoppe en ny
// analyse.
func NewLedger(s store.Store) *Ledger {
	l := &Ledger{store: s}

	data, err := s.Get(store.KeyJobs)
	if err != nil {
		slog.Warn("Klarte ikke lese jobbhistorikk – starter tomt", "error", err)
		return l
	}
	if data == nil {
		return l
	}
	if err := json.Unmarshal(data, &l.jobs); err != nil {
		slog.Warn("Korrupt jobbhistorikk – starter tomt", "error", err)
		l.jobs = nil
	}
	return l
}

// Create registrerer en ny jobb som queued. En retry går også hit –
// jobber gjenoppstår aldri, de får ny id.
func (l *Ledger) Create(req models.JobRequest) models.Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	job := models.Job{
		ID:           uuid.NewString(),
		Repository:   req.Repository,
		Template:     req.Template,
		Status:       models.StatusQueued,
		Timestamp:    Now(),
		Branch:       req.Branch,
		Instructions: req.Instructions,
		AuthMode:     req.AuthMode,
	}

	l.jobs = append([]models.Job{job}, l.jobs...)
	if len(l.jobs) > MaxJobs {
		l.jobs = l.jobs[:MaxJobs]
	}

	l.persist()
	return job
}

// Begin flytter queued -> analyzing.
func (l *Ledger) Begin(id string) {
	l.transition(id, models.StatusQueued, models.StatusAnalyzing, "")
}

// Complete flytter analyzing -> completed. Ukjent id eller terminal
// jobb er en no-op – butikken kan ha blitt tømt underveis.
func (l *Ledger) Complete(id string) {
	l.transition(id, models.StatusAnalyzing, models.StatusCompleted, "")
}

// Fail flytter analyzing -> failed med en kort begrunnelse.
func (l *Ledger) Fail(id, reason string) {
	l.transition(id, models.StatusAnalyzing, models.StatusFailed, reason)
}

func (l *Ledger) transition(id string, from, to models.JobStatus, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.jobs {
		if l.jobs[i].ID != id {
			continue
		}
		if l.jobs[i].Status.Terminal() || l.jobs[i].Status != from {
			slog.Debug("Ugyldig jobbtransisjon ignorert", "id", id, "fra", l.jobs[i].Status, "til", to)
			return
		}
		l.jobs[i].Status = to
		l.jobs[i].Error = reason
		l.persist()
		return
	}
	slog.Debug("Jobb ikke funnet – ignorerer", "id", id, "til", to)
}

// MarkDownloaded noterer at dokumentet for jobben er lastet ned.
func (l *Ledger) MarkDownloaded(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.jobs {
		if l.jobs[i].ID == id {
			l.jobs[i].Downloaded = true
			l.persist()
			return
		}
	}
}

// List gir en kopi av historikken, mest nylig først.
func (l *Ledger) List() []models.Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Job, len(l.jobs))
	copy(out, l.jobs)
	return out
}

// Clear tømmer historikken og fjerner nøkkelen fra butikken.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jobs = nil
	if err := l.store.Delete(store.KeyJobs); err != nil {
		slog.Warn("Klarte ikke slette jobbhistorikk", "error", err)
	}
}

// ExportBundle er filformatet for historikkeksport.
type ExportBundle struct {
	ExportDate time.Time    `json:"exportDate"`
	Jobs       []models.Job `json:"jobs"`
	TotalJobs  int          `json:"totalJobs"`
	Version    string       `json:"version"`
}

func (l *Ledger) ExportAll() ExportBundle {
	jobs := l.List()
	return ExportBundle{
		ExportDate: Now(),
		Jobs:       jobs,
		TotalJobs:  len(jobs),
		Version:    "1.0",
	}
}

// persist skriver hele historikken. Kalles med låsen holdt.
// Skrivefeil logges men stopper ikke pipelinen.
func (l *Ledger) persist() {
	data, err := json.Marshal(l.jobs)
	if err != nil {
		slog.Warn("Klarte ikke serialisere jobbhistorikk", "error", err)
		return
	}
	if err := l.store.Set(store.KeyJobs, data); err != nil {
		slog.Warn("Klarte ikke lagre jobbhistorikk", "error", err)
	}
}
