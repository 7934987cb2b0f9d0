package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// GenerateDetails er det faste "fulle" dokumentet. Det er ikke
// mal-drevet: seksjonslisten ligger her og dekker mer enn malene gjør
// (arkitektur, oppsett, sikkerhet/ytelse, veikart).
func GenerateDetails(result models.AnalysisResult) string {
	var b strings.Builder
	r := result

	fmt.Fprintf(&b, "# DETAILS: %s\n\n", r.Basic.FullName)
	fmt.Fprintf(&b, "Generert %s.\n\n", Now().UTC().Format(time.RFC3339))

	b.WriteString("## Om prosjektet\n\n")
	b.WriteString(formatOverview(r))
	b.WriteString("\n## Arkitektur\n\n")
	fmt.Fprintf(&b, "Arkitekturen er klassifisert som «%s». Rammeverk: %s. Primærspråk: %s.\n",
		r.Analysis.Architecture, r.Analysis.Framework, r.Basic.PrimaryLanguage)
	b.WriteString("\n## Nøkkeltall\n\n")
	b.WriteString(formatStatistics(r))
	b.WriteString("\n## Kom i gang\n\n")
	b.WriteString(formatSetup(r))

	b.WriteString("\n## Konfigurasjon\n\n")
	b.WriteString("```shell\n")
	fmt.Fprintf(&b, "# typiske miljøvariabler for et %s-prosjekt\n", r.Basic.PrimaryLanguage)
	b.WriteString("# se repoets egen dokumentasjon for de faktiske navnene\n")
	b.WriteString("```\n")

	b.WriteString("\n## Sikkerhet\n\n")
	b.WriteString(formatSecurity(r))

	b.WriteString("\n## Ytelse\n\n")
	fmt.Fprintf(&b, "Kompleksitetsindikatoren er %d/100 og repoet er %d kB. Tallet er en plassholder inntil en ekte analysator er koblet på.\n",
		r.Analysis.ComplexityScore, r.Basic.SizeKB)

	b.WriteString("\n## Veikart\n\n")
	b.WriteString(formatRecommendations(r))

	return b.String()
}
