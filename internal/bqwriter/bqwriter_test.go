package bqwriter_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonmartinstorm/repokontekst/internal/bqwriter"
	"github.com/jonmartinstorm/repokontekst/internal/models"
)

func TestBqwriter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "BQWriter Suite")
}

var _ = Describe("Mapping-funksjoner", func() {
	snapshot := time.Date(2025, 6, 17, 12, 0, 0, 0, time.UTC)

	result := models.AnalysisResult{
		Basic: models.RepoSummary{
			ID:              42,
			Name:            "repo",
			FullName:        "org/repo",
			Description:     "desc",
			HtmlUrl:         "https://github.com/org/repo",
			PrimaryLanguage: "Go",
			Languages:       map[string]int64{"Go": 1000, "Shell": 500},
			Stars:           100,
			Forks:           10,
			OpenIssues:      5,
			SizeKB:          2048,
			License:         "MIT",
			CreatedAt:       "2025-01-01T10:00:00Z",
			UpdatedAt:       "2025-06-17T10:00:00Z",
			OwnerLogin:      "org",
		},
		Analysis: models.DerivedMetrics{
			Framework:        "Go",
			Architecture:     "Standard",
			ComplexityScore:  55,
			ContributorCount: 3,
			FileCount:        12,
			HasTests:         true,
			HasCI:            true,
			HasDocs:          false,
		},
	}

	It("skal mappe analysen til én rad", func() {
		row := bqwriter.ConvertAnalysis(result, snapshot)

		Expect(row.RepoID).To(Equal(int64(42)))
		Expect(row.WhenCollected).To(Equal(snapshot))
		Expect(row.FullName).To(Equal("org/repo"))
		Expect(row.PrimaryLanguage).To(Equal("Go"))
		Expect(row.License).To(Equal("MIT"))
		Expect(row.ComplexityScore).To(Equal(int64(55)))
		Expect(row.HasTests).To(BeTrue())
		Expect(row.HasDocs).To(BeFalse())
	})

	It("skal mappe språkkartet til én rad per språk", func() {
		rows := bqwriter.ConvertLanguages(result, snapshot)

		Expect(rows).To(HaveLen(2))
		for _, row := range rows {
			Expect(row.RepoID).To(Equal(int64(42)))
			Expect(row.WhenCollected).To(Equal(snapshot))
		}
	})

	It("skal mappe en jobb med status og feilårsak", func() {
		job := models.Job{
			ID:         "job-1",
			Repository: "org/repo",
			Template:   "minimal",
			Status:     models.StatusFailed,
			Timestamp:  snapshot,
			AuthMode:   models.AuthToken,
			Error:      "henting feilet",
		}

		row := bqwriter.ConvertJob(job, snapshot)
		Expect(row.JobID).To(Equal("job-1"))
		Expect(row.Status).To(Equal("failed"))
		Expect(row.AuthMode).To(Equal("token"))
		Expect(row.Error).To(Equal("henting feilet"))
	})
})
