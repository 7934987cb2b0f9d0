// Package generator renderer et AnalysisResult til markdown. Én
// inngang er mal-drevet (Generate), den andre er det faste, rikere
// DETAILS-dokumentet (GenerateDetails).
package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// Now kan byttes i tester – tidsstempelet er den eneste tillatte
// kilden til ikke-determinisme i utdataene.
var Now = time.Now

type sectionFormatter func(models.AnalysisResult) string

// sectionFormatters er de velkjente seksjonsnavnene. Ukjente navn får
// plassholdertekst i stedet for feil, så malforfattere står fritt.
var sectionFormatters = map[string]sectionFormatter{
	"Overview":          formatOverview,
	"Technical Details": formatTechnicalDetails,
	"Project Structure": formatProjectStructure,
	"Dependencies":      formatDependencies,
	"Contributors":      formatContributors,
	"Statistics":        formatStatistics,
	"Setup":             formatSetup,
	"Security":          formatSecurity,
	"Recommendations":   formatRecommendations,
}

// Generate bygger dokumentet seksjon for seksjon i malens rekkefølge.
func Generate(result models.AnalysisResult, template models.Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s – kontekst\n\n", result.Basic.FullName)
	fmt.Fprintf(&b, "Generert %s med malen «%s».\n\n", Now().UTC().Format(time.RFC3339), template.Name)

	for _, section := range template.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section)
		if format, ok := sectionFormatters[section]; ok {
			b.WriteString(format(result))
		} else {
			fmt.Fprintf(&b, "_Ingen innebygd formattering for «%s» – fyll inn selv._\n", section)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatOverview(r models.AnalysisResult) string {
	var b strings.Builder
	desc := r.Basic.Description
	if desc == "" {
		desc = "Ingen beskrivelse."
	}
	fmt.Fprintf(&b, "%s\n\n", desc)
	fmt.Fprintf(&b, "- Repository: [%s](%s)\n", r.Basic.FullName, r.Basic.HtmlUrl)
	fmt.Fprintf(&b, "- Primærspråk: %s\n", r.Basic.PrimaryLanguage)
	fmt.Fprintf(&b, "- Stjerner: %d · Forks: %d · Åpne issues: %d\n", r.Basic.Stars, r.Basic.Forks, r.Basic.OpenIssues)
	if r.Basic.License != "" {
		fmt.Fprintf(&b, "- Lisens: %s\n", r.Basic.License)
	}
	return b.String()
}

func formatTechnicalDetails(r models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Rammeverk: %s\n", r.Analysis.Framework)
	fmt.Fprintf(&b, "- Arkitektur: %s\n", r.Analysis.Architecture)
	fmt.Fprintf(&b, "- Kompleksitet: %d/100\n", r.Analysis.ComplexityScore)
	fmt.Fprintf(&b, "- Språkfordeling:\n")
	for _, lang := range sortedLanguages(r.Basic.Languages) {
		fmt.Fprintf(&b, "  - %s: %d bytes\n", lang.name, lang.bytes)
	}
	return b.String()
}

func formatProjectStructure(r models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d oppføringer på toppnivå.\n\n", r.Analysis.FileCount)
	fmt.Fprintf(&b, "- Tester: %s\n", jaNei(r.Analysis.HasTests))
	fmt.Fprintf(&b, "- CI-oppsett: %s\n", jaNei(r.Analysis.HasCI))
	fmt.Fprintf(&b, "- Dokumentasjon: %s\n", jaNei(r.Analysis.HasDocs))
	return b.String()
}

func formatDependencies(r models.AnalysisResult) string {
	return fmt.Sprintf("Avhengigheter avledes av primærspråket (%s) og rammeverket (%s). Se manifestfilene i repoet for den fulle listen.\n",
		r.Basic.PrimaryLanguage, r.Analysis.Framework)
}

func formatContributors(r models.AnalysisResult) string {
	return fmt.Sprintf("%d bidragsytere registrert. Eier: [%s](https://github.com/%s).\n",
		r.Analysis.ContributorCount, r.Basic.OwnerLogin, r.Basic.OwnerLogin)
}

func formatStatistics(r models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| Nøkkeltall | Verdi |\n|---|---|\n")
	fmt.Fprintf(&b, "| Stjerner | %d |\n", r.Basic.Stars)
	fmt.Fprintf(&b, "| Forks | %d |\n", r.Basic.Forks)
	fmt.Fprintf(&b, "| Åpne issues | %d |\n", r.Basic.OpenIssues)
	fmt.Fprintf(&b, "| Størrelse | %d kB |\n", r.Basic.SizeKB)
	fmt.Fprintf(&b, "| Bidragsytere | %d |\n", r.Analysis.ContributorCount)
	fmt.Fprintf(&b, "| Kompleksitet | %d/100 |\n", r.Analysis.ComplexityScore)
	return b.String()
}

func formatSetup(r models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("```shell\n")
	fmt.Fprintf(&b, "git clone %s.git\n", r.Basic.HtmlUrl)
	fmt.Fprintf(&b, "cd %s\n", r.Basic.Name)
	b.WriteString("```\n\n")
	b.WriteString(setupHint(r.Analysis.Framework, r.Basic.PrimaryLanguage))
	return b.String()
}

func formatSecurity(r models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- CI-pipeline: %s\n", jaNei(r.Analysis.HasCI))
	fmt.Fprintf(&b, "- Testdekning til stede: %s\n", jaNei(r.Analysis.HasTests))
	b.WriteString("\nIngen automatisk sårbarhetsskanning er kjørt – tallene her beskriver bare hva som er synlig i repo-strukturen.\n")
	return b.String()
}

func formatRecommendations(r models.AnalysisResult) string {
	var recs []string
	if !r.Analysis.HasTests {
		recs = append(recs, "Legg til tester – ingen testfiler funnet på toppnivå.")
	}
	if !r.Analysis.HasCI {
		recs = append(recs, "Sett opp CI, f.eks. GitHub Actions.")
	}
	if !r.Analysis.HasDocs {
		recs = append(recs, "Skriv en README.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Strukturen ser komplett ut – hold dokumentasjon og tester ved like.")
	}

	var b strings.Builder
	for _, rec := range recs {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}

func setupHint(framework, language string) string {
	switch framework {
	case "Next.js", "React", "Vue", "Angular", "Vite", "Express", "NestJS", "Nuxt":
		return "Installer avhengigheter med `npm install` og se package.json for kjørekommandoer.\n"
	case "Django", "Flask", "FastAPI":
		return "Opprett et virtuelt miljø og installer med `pip install -r requirements.txt`.\n"
	}
	switch language {
	case "Go":
		return "Bygg med `go build ./...`.\n"
	case "Rust":
		return "Bygg med `cargo build`.\n"
	}
	return "Se repoets egen dokumentasjon for byggeinstruksjoner.\n"
}

func jaNei(v bool) string {
	if v {
		return "ja"
	}
	return "nei"
}

type langCount struct {
	name  string
	bytes int64
}

// sortedLanguages gir størst først, alfabetisk ved likhet, så
// dokumentene blir byte-identiske mellom kjøringer.
func sortedLanguages(langs map[string]int64) []langCount {
	out := make([]langCount, 0, len(langs))
	for name, bytes := range langs {
		out = append(out, langCount{name: name, bytes: bytes})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].bytes != out[j].bytes {
			return out[i].bytes > out[j].bytes
		}
		return out[i].name < out[j].name
	})
	return out
}
