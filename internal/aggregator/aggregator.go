// Package aggregator normaliserer rå API-svar til ett AnalysisResult.
// Alt her er rene funksjoner uten I/O – samme input gir samme output,
// med unntak av tallene bak MetricsProvider-sømmen.
package aggregator

import (
	"strings"

	"github.com/jonmartinstorm/repokontekst/internal/models"
)

type Aggregator struct {
	Metrics MetricsProvider
}

func NewAggregator(metrics MetricsProvider) *Aggregator {
	if metrics == nil {
		metrics = RandomMetrics{}
	}
	return &Aggregator{Metrics: metrics}
}

func (a *Aggregator) Aggregate(raw models.RawRepoData) models.AnalysisResult {
	primary := PrimaryLanguage(raw.Languages)

	summary := models.RepoSummary{
		ID:              raw.Repo.ID,
		Name:            raw.Repo.Name,
		FullName:        raw.Repo.FullName,
		Description:     raw.Repo.Description,
		HtmlUrl:         raw.Repo.HtmlUrl,
		PrimaryLanguage: primary,
		Languages:       raw.Languages,
		Stars:           raw.Repo.Stars,
		Forks:           raw.Repo.Forks,
		OpenIssues:      raw.Repo.OpenIssues,
		SizeKB:          raw.Repo.Size,
		License:         safeLicense(raw.Repo.License),
		CreatedAt:       raw.Repo.CreatedAt,
		UpdatedAt:       raw.Repo.UpdatedAt,
		OwnerLogin:      raw.Repo.Owner.Login,
		OwnerAvatarUrl:  raw.Repo.Owner.AvatarUrl,
	}

	metrics := models.DerivedMetrics{
		Framework:        DetectFramework(raw.Contents, primary),
		Architecture:     "Standard",
		ComplexityScore:  a.Metrics.ComplexityScore(raw),
		ContributorCount: len(raw.Contributors),
		FileCount:        len(raw.Contents),
		HasTests:         hasAnyMarker(raw.Contents, "test", "spec"),
		HasCI:            hasAnyMarker(raw.Contents, ".github", "ci", "travis"),
		HasDocs:          hasAnyMarker(raw.Contents, "readme", "docs"),
	}

	return models.AnalysisResult{Basic: summary, Analysis: metrics}
}

// PrimaryLanguage er nøkkelen med størst byte-antall. Ved likhet
// vinner det leksikografisk minste navnet, så resultatet er
// deterministisk uavhengig av map-iterasjon.
func PrimaryLanguage(langs map[string]int64) string {
	best := ""
	var bestBytes int64 = -1
	for name, bytes := range langs {
		if bytes > bestBytes || (bytes == bestBytes && name < best) {
			best = name
			bestBytes = bytes
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}

// frameworkRules sjekkes i rekkefølge – første treff vinner.
var frameworkRules = []struct {
	Marker    string
	Framework string
}{
	{"next.config", "Next.js"},
	{"nuxt.config", "Nuxt"},
	{"vite.config", "Vite"},
	{"angular.json", "Angular"},
	{"vue.config", "Vue"},
	{"nest-cli.json", "NestJS"},
	{"react", "React"},
	{"vue", "Vue"},
	{"angular", "Angular"},
	{"manage.py", "Django"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
	{"express", "Express"},
	{"nest", "NestJS"},
}

// DetectFramework gjetter rammeverk ut fra filnavn på toppnivå.
// Faller tilbake til primærspråket, og "Unknown" hvis heller ikke det
// finnes.
func DetectFramework(contents []models.ContentEntry, primaryLanguage string) string {
	for _, rule := range frameworkRules {
		for _, entry := range contents {
			if strings.Contains(strings.ToLower(entry.Name), rule.Marker) {
				return rule.Framework
			}
		}
	}
	if primaryLanguage != "" && primaryLanguage != "Unknown" {
		return primaryLanguage
	}
	return "Unknown"
}

func hasAnyMarker(contents []models.ContentEntry, markers ...string) bool {
	for _, entry := range contents {
		name := strings.ToLower(entry.Name)
		for _, marker := range markers {
			if strings.Contains(name, marker) {
				return true
			}
		}
	}
	return false
}

func safeLicense(l *models.License) string {
	if l == nil {
		return ""
	}
	return l.SpdxID
}
