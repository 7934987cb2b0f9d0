package aggregator_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonmartinstorm/repokontekst/internal/aggregator"
	"github.com/jonmartinstorm/repokontekst/internal/models"
)

func TestAggregator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Aggregator Suite")
}

func entries(names ...string) []models.ContentEntry {
	out := make([]models.ContentEntry, 0, len(names))
	for _, n := range names {
		out = append(out, models.ContentEntry{Name: n, Type: "file"})
	}
	return out
}

var _ = Describe("PrimaryLanguage", func() {
	It("skal velge språket med flest bytes", func() {
		langs := map[string]int64{"JavaScript": 800, "CSS": 200}
		Expect(aggregator.PrimaryLanguage(langs)).To(Equal("JavaScript"))
	})

	It("skal bryte likhet leksikografisk", func() {
		langs := map[string]int64{"Ruby": 500, "Go": 500, "Zig": 500}
		Expect(aggregator.PrimaryLanguage(langs)).To(Equal("Go"))
	})

	It("skal gi Unknown for tomt kart", func() {
		Expect(aggregator.PrimaryLanguage(map[string]int64{})).To(Equal("Unknown"))
		Expect(aggregator.PrimaryLanguage(nil)).To(Equal("Unknown"))
	})
})

var _ = Describe("DetectFramework", func() {
	It("skal kjenne igjen Next.js på config-fil", func() {
		Expect(aggregator.DetectFramework(entries("next.config.js", "package.json"), "TypeScript")).To(Equal("Next.js"))
	})

	It("skal kjenne igjen Django på manage.py", func() {
		Expect(aggregator.DetectFramework(entries("manage.py", "requirements.txt"), "Python")).To(Equal("Django"))
	})

	It("skal være ufølsom for store bokstaver", func() {
		Expect(aggregator.DetectFramework(entries("Vite.Config.TS"), "TypeScript")).To(Equal("Vite"))
	})

	It("skal falle tilbake til primærspråket", func() {
		Expect(aggregator.DetectFramework(entries("main.go", "go.mod"), "Go")).To(Equal("Go"))
	})

	It("skal gi Unknown uten språk og uten treff", func() {
		Expect(aggregator.DetectFramework(nil, "Unknown")).To(Equal("Unknown"))
	})
})

var _ = Describe("Aggregate", func() {
	agg := aggregator.NewAggregator(aggregator.FixedMetrics{Score: 55})

	It("skal normalisere et typisk JavaScript-repo", func() {
		raw := models.RawRepoData{
			Repo: models.RepoMeta{
				ID:       7,
				Name:     "widgets",
				FullName: "acme/widgets",
				Stars:    42,
				License:  &models.License{SpdxID: "MIT"},
				Owner:    models.RepoOwner{Login: "acme"},
			},
			Languages:    map[string]int64{"JavaScript": 800, "CSS": 200},
			Contributors: []models.Contributor{{Login: "kari", Contributions: 12}},
			Contents:     entries("package.json", "README.md", ".github/workflows/ci.yml"),
		}

		result := agg.Aggregate(raw)

		Expect(result.Basic.PrimaryLanguage).To(Equal("JavaScript"))
		Expect(result.Basic.License).To(Equal("MIT"))
		Expect(result.Analysis.HasDocs).To(BeTrue())
		Expect(result.Analysis.HasCI).To(BeTrue())
		Expect(result.Analysis.HasTests).To(BeFalse())
		Expect(result.Analysis.Architecture).To(Equal("Standard"))
		Expect(result.Analysis.ComplexityScore).To(Equal(55))
		Expect(result.Analysis.ContributorCount).To(Equal(1))
		Expect(result.Analysis.FileCount).To(Equal(3))
	})

	It("skal sette HasDocs for alle lister med readme", func() {
		raw := models.RawRepoData{Contents: entries("Readme.rst")}
		Expect(agg.Aggregate(raw).Analysis.HasDocs).To(BeTrue())
	})

	It("skal ikke sette HasDocs uten readme eller docs", func() {
		raw := models.RawRepoData{Contents: entries("main.go", "LICENSE")}
		Expect(agg.Aggregate(raw).Analysis.HasDocs).To(BeFalse())
	})

	It("skal kjenne igjen tester på spec-filer", func() {
		raw := models.RawRepoData{Contents: entries("widget.spec.ts")}
		Expect(agg.Aggregate(raw).Analysis.HasTests).To(BeTrue())
	})

	It("skal være deterministisk med FixedMetrics", func() {
		raw := models.RawRepoData{
			Repo:      models.RepoMeta{ID: 1, FullName: "a/b"},
			Languages: map[string]int64{"Go": 100},
		}
		Expect(agg.Aggregate(raw)).To(Equal(agg.Aggregate(raw)))
	})

	It("skal tåle helt tomt repo", func() {
		result := agg.Aggregate(models.RawRepoData{})
		Expect(result.Basic.PrimaryLanguage).To(Equal("Unknown"))
		Expect(result.Analysis.Framework).To(Equal("Unknown"))
		Expect(result.Basic.License).To(Equal(""))
	})
})
