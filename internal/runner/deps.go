package runner

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/jonmartinstorm/repokontekst/internal/aggregator"
	"github.com/jonmartinstorm/repokontekst/internal/fetcher"
	"github.com/jonmartinstorm/repokontekst/internal/generator"
	"github.com/jonmartinstorm/repokontekst/internal/models"
	"github.com/jonmartinstorm/repokontekst/internal/templates"
)

// Deps er alt pipelinen trenger utenfra, samlet i ett interface så
// tester kan bytte ut hele flaten.
type Deps interface {
	FetchRepository(ctx context.Context, id models.RepoIdentity, cred fetcher.Credential) (models.RawRepoData, error)
	Aggregate(raw models.RawRepoData) models.AnalysisResult
	ResolveTemplate(id string) (models.Template, error)
	Generate(result models.AnalysisResult, tpl models.Template) string
	WriteDocument(dir, filename, doc string) (string, error)
}

type RealDeps struct {
	GitHub    fetcher.GitHubAPI
	Agg       *aggregator.Aggregator
	Templates *templates.Registry
}

func (r RealDeps) FetchRepository(ctx context.Context, id models.RepoIdentity, cred fetcher.Credential) (models.RawRepoData, error) {
	return r.GitHub.FetchRepository(ctx, id, cred)
}

func (r RealDeps) Aggregate(raw models.RawRepoData) models.AnalysisResult {
	return r.Agg.Aggregate(raw)
}

func (r RealDeps) ResolveTemplate(id string) (models.Template, error) {
	return r.Templates.Resolve(id)
}

func (r RealDeps) Generate(result models.AnalysisResult, tpl models.Template) string {
	return generator.Generate(result, tpl)
}

func (RealDeps) WriteDocument(dir, filename, doc string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("kunne ikke opprette katalog %s: %w", dir, err)
	}
	full := path.Join(dir, filename)
	if err := os.WriteFile(full, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("kunne ikke skrive til fil %s: %w", full, err)
	}
	return full, nil
}
