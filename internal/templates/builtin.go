package templates

import (
	"time"

	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// builtinCreated er en fast dato så de innebygde malene er identiske
// fra kjøring til kjøring.
var builtinCreated = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const builtinVersion = "1.0"

// Builtins er den faste katalogen. Rekkefølgen her er rekkefølgen i
// ListAll. Ikke muter – registryet deler ut kopier.
var Builtins = []models.Template{
	{ID: "comprehensive", Name: "Komplett kontekst", Description: "Alle seksjoner – for dyp onboarding av verktøy og folk", Icon: "📚", Sections: []string{"Overview", "Technical Details", "Project Structure", "Dependencies", "Contributors", "Statistics", "Recommendations"}},
	{ID: "minimal", Name: "Minimal", Description: "Bare det aller viktigste", Icon: "✂️", Sections: []string{"Overview"}},
	{ID: "technical", Name: "Teknisk", Description: "Teknologivalg og struktur", Icon: "🔧", Sections: []string{"Technical Details", "Dependencies", "Project Structure"}},
	{ID: "documentation", Name: "Dokumentasjon", Description: "Utgangspunkt for README og docs", Icon: "📝", Sections: []string{"Overview", "Setup", "Project Structure"}},
	{ID: "onboarding", Name: "Onboarding", Description: "For nye på teamet", Icon: "👋", Sections: []string{"Overview", "Setup", "Project Structure", "Contributors"}},
	{ID: "security", Name: "Sikkerhet", Description: "Sikkerhetsfokusert gjennomgang", Icon: "🔒", Sections: []string{"Overview", "Technical Details", "Security"}},
	{ID: "architecture", Name: "Arkitektur", Description: "Struktur og avhengigheter", Icon: "🏗️", Sections: []string{"Overview", "Technical Details", "Project Structure", "Dependencies"}},
	{ID: "api", Name: "API", Description: "For integrasjon mot repoet", Icon: "🔌", Sections: []string{"Overview", "Technical Details", "Setup"}},
	{ID: "testing", Name: "Testing", Description: "Teststatus og anbefalinger", Icon: "🧪", Sections: []string{"Overview", "Statistics", "Recommendations"}},
	{ID: "deployment", Name: "Deploy", Description: "Bygg og utrulling", Icon: "🚀", Sections: []string{"Overview", "Setup", "Dependencies"}},
	{ID: "performance", Name: "Ytelse", Description: "Størrelse og kompleksitet", Icon: "⚡", Sections: []string{"Overview", "Statistics", "Technical Details"}},
	{ID: "contributing", Name: "Bidrag", Description: "For eksterne bidragsytere", Icon: "🤝", Sections: []string{"Overview", "Setup", "Contributors", "Recommendations"}},
	{ID: "migration", Name: "Migrering", Description: "Grunnlag for flytte- og oppgraderingsarbeid", Icon: "📦", Sections: []string{"Overview", "Technical Details", "Dependencies", "Statistics"}},
	{ID: "review", Name: "Review", Description: "Rask vurdering av et ukjent repo", Icon: "🔍", Sections: []string{"Overview", "Statistics", "Recommendations"}},
	{ID: "opensource", Name: "Åpen kildekode", Description: "Helhetsbilde for publisering", Icon: "🌍", Sections: []string{"Overview", "Contributors", "Statistics", "Setup"}},
}

func init() {
	for i := range Builtins {
		Builtins[i].IsPublic = true
		Builtins[i].CreatedAt = builtinCreated
		Builtins[i].Version = builtinVersion
	}
}
