// Package bqwriter eksporterer ferdige analyser og jobbhistorikk til
// BigQuery. Eksporten er valgfri og best effort – pipelinen er ferdig
// før denne kjører.
package bqwriter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonmartinstorm/repokontekst/internal/config"
	"github.com/jonmartinstorm/repokontekst/internal/models"
)

type BigQueryWriter struct {
	Client  *bigquery.Client
	Dataset string
}

func NewBigQueryWriter(ctx context.Context, cfg *config.Config) (*BigQueryWriter, error) {
	var opts []option.ClientOption
	if cfg.BQCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.BQCredentials))
	}

	client, err := bigquery.NewClient(ctx, cfg.BQProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("kan ikke opprette BigQuery-klient: %w", err)
	}

	// Sørg for at hver tabell finnes
	tables := map[string]any{
		"analyses":       BGAnalysis{},
		"repo_languages": BGRepoLanguage{},
		"jobs":           BGJob{},
	}

	for tableName, schemaExample := range tables {
		if err := ensureTableExists(ctx, client, cfg.BQDataset, tableName, schemaExample); err != nil {
			return nil, fmt.Errorf("kunne ikke sikre tabell %s: %w", tableName, err)
		}
	}

	return &BigQueryWriter{
		Client:  client,
		Dataset: cfg.BQDataset,
	}, nil
}

// ExportAnalysis skriver ett analyseresultat pluss språkradene.
func (w *BigQueryWriter) ExportAnalysis(ctx context.Context, result models.AnalysisResult, snapshot time.Time) error {
	row := ConvertAnalysis(result, snapshot)
	langs := ConvertLanguages(result, snapshot)

	if err := insert(ctx, w.Client, w.Dataset, "analyses", []BGAnalysis{row}); err != nil {
		return fmt.Errorf("analyses insert failed: %w", err)
	}
	if err := insert(ctx, w.Client, w.Dataset, "repo_languages", langs); err != nil {
		return fmt.Errorf("repo_languages insert failed: %w", err)
	}
	return nil
}

// ExportJobs skriver hele jobbhistorikken.
func (w *BigQueryWriter) ExportJobs(ctx context.Context, jobs []models.Job, snapshot time.Time) error {
	rows := make([]BGJob, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, ConvertJob(job, snapshot))
	}
	if err := insert(ctx, w.Client, w.Dataset, "jobs", rows); err != nil {
		return fmt.Errorf("jobs insert failed: %w", err)
	}
	return nil
}

func (w *BigQueryWriter) Close() error {
	return w.Client.Close()
}

func ensureTableExists(ctx context.Context, client *bigquery.Client, dataset, table string, schemaExample any) error {
	schema, err := bigquery.InferSchema(schemaExample)
	if err != nil {
		return fmt.Errorf("kunne ikke utlede skjema for %s: %w", table, err)
	}

	err = client.Dataset(dataset).Table(table).Create(ctx, &bigquery.TableMetadata{Schema: schema})
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 409 {
			// Finnes allerede
			return nil
		}
		return err
	}
	return nil
}

func insert[T any](ctx context.Context, client *bigquery.Client, dataset, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	inserter := client.Dataset(dataset).Table(table).Inserter()
	return inserter.Put(ctx, rows)
}

// ==== Data-strukturer ====

type BGAnalysis struct {
	RepoID           int64     `bigquery:"repo_id"`
	WhenCollected    time.Time `bigquery:"when_collected"`
	Name             string    `bigquery:"name"`
	FullName         string    `bigquery:"full_name"`
	Description      string    `bigquery:"description"`
	HtmlUrl          string    `bigquery:"html_url"`
	PrimaryLanguage  string    `bigquery:"primary_language"`
	Stars            int64     `bigquery:"stars"`
	Forks            int64     `bigquery:"forks"`
	OpenIssues       int64     `bigquery:"open_issues"`
	SizeKB           int64     `bigquery:"size_kb"`
	License          string    `bigquery:"license"`
	CreatedAt        string    `bigquery:"created_at"`
	UpdatedAt        string    `bigquery:"updated_at"`
	OwnerLogin       string    `bigquery:"owner_login"`
	Framework        string    `bigquery:"framework"`
	Architecture     string    `bigquery:"architecture"`
	ComplexityScore  int64     `bigquery:"complexity_score"`
	ContributorCount int64     `bigquery:"contributor_count"`
	FileCount        int64     `bigquery:"file_count"`
	HasTests         bool      `bigquery:"has_tests"`
	HasCI            bool      `bigquery:"has_ci"`
	HasDocs          bool      `bigquery:"has_docs"`
}

type BGRepoLanguage struct {
	RepoID        int64     `bigquery:"repo_id"`
	WhenCollected time.Time `bigquery:"when_collected"`
	Language      string    `bigquery:"language"`
	Bytes         int64     `bigquery:"bytes"`
}

type BGJob struct {
	JobID         string    `bigquery:"job_id"`
	WhenCollected time.Time `bigquery:"when_collected"`
	Repository    string    `bigquery:"repository"`
	Template      string    `bigquery:"template"`
	Status        string    `bigquery:"status"`
	Timestamp     time.Time `bigquery:"timestamp"`
	Downloaded    bool      `bigquery:"downloaded"`
	Branch        string    `bigquery:"branch"`
	AuthMode      string    `bigquery:"auth_mode"`
	Error         string    `bigquery:"error"`
}

// ==== Mapping-funksjoner ====

func ConvertAnalysis(result models.AnalysisResult, snapshot time.Time) BGAnalysis {
	b := result.Basic
	a := result.Analysis
	return BGAnalysis{
		RepoID:           b.ID,
		WhenCollected:    snapshot,
		Name:             b.Name,
		FullName:         b.FullName,
		Description:      b.Description,
		HtmlUrl:          b.HtmlUrl,
		PrimaryLanguage:  b.PrimaryLanguage,
		Stars:            b.Stars,
		Forks:            b.Forks,
		OpenIssues:       b.OpenIssues,
		SizeKB:           b.SizeKB,
		License:          b.License,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		OwnerLogin:       b.OwnerLogin,
		Framework:        a.Framework,
		Architecture:     a.Architecture,
		ComplexityScore:  int64(a.ComplexityScore),
		ContributorCount: int64(a.ContributorCount),
		FileCount:        int64(a.FileCount),
		HasTests:         a.HasTests,
		HasCI:            a.HasCI,
		HasDocs:          a.HasDocs,
	}
}

func ConvertLanguages(result models.AnalysisResult, snapshot time.Time) []BGRepoLanguage {
	rows := make([]BGRepoLanguage, 0, len(result.Basic.Languages))
	for lang, bytes := range result.Basic.Languages {
		rows = append(rows, BGRepoLanguage{
			RepoID:        result.Basic.ID,
			WhenCollected: snapshot,
			Language:      lang,
			Bytes:         bytes,
		})
	}
	return rows
}

func ConvertJob(job models.Job, snapshot time.Time) BGJob {
	return BGJob{
		JobID:         job.ID,
		WhenCollected: snapshot,
		Repository:    job.Repository,
		Template:      job.Template,
		Status:        string(job.Status),
		Timestamp:     job.Timestamp,
		Downloaded:    job.Downloaded,
		Branch:        job.Branch,
		AuthMode:      string(job.AuthMode),
		Error:         job.Error,
	}
}
