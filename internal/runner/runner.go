package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonmartinstorm/repokontekst/internal/config"
	"github.com/jonmartinstorm/repokontekst/internal/fetcher"
	"github.com/jonmartinstorm/repokontekst/internal/ledger"
	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// Result er utfallet av én kjøring.
type Result struct {
	Job          models.Job
	Analysis     models.AnalysisResult
	DocumentPath string
}

// Run kjører én analyse ende til ende: jobb opprettes og settes i
// analyzing, data hentes og normaliseres, og jobben lander i
// completed eller failed. Dokumentgenerering skjer etterpå og rører
// aldri jobbstatusen.
func Run(ctx context.Context, cfg config.Config, deps Deps, led *ledger.Ledger) (Result, error) {
	identity, err := resolveIdentity(cfg)
	if err != nil {
		return Result{}, err
	}

	cred, err := resolveCredential(ctx, cfg)
	if err != nil {
		return Result{}, err
	}

	job := led.Create(models.JobRequest{
		Repository:   identity.FullName(),
		Template:     cfg.Template,
		Branch:       cfg.Branch,
		Instructions: cfg.Instructions,
		AuthMode:     cred.Mode(),
	})
	led.Begin(job.ID)

	slog.Info("🔁 Starter analyse", "repo", identity.FullName(), "job", job.ID)

	raw, err := deps.FetchRepository(ctx, identity, cred)
	if err != nil {
		led.Fail(job.ID, err.Error())
		return Result{Job: job}, fmt.Errorf("henting feilet: %w", err)
	}

	analysis := deps.Aggregate(raw)
	led.Complete(job.ID)
	slog.Info("✅ Analyse ferdig", "repo", identity.FullName(), "primærspråk", analysis.Basic.PrimaryLanguage)

	result := Result{Job: job, Analysis: analysis}

	// Rendering er frikoblet fra jobb-livssyklusen: feil her gir feil
	// tilbake til brukeren, men jobben forblir completed.
	tpl, err := deps.ResolveTemplate(cfg.Template)
	if err != nil {
		slog.Error("Malfeil – hopper over dokumentgenerering", "template", cfg.Template, "error", err)
		return result, err
	}

	doc := deps.Generate(analysis, tpl)
	filename := fmt.Sprintf("%s_%s_kontekst.md", identity.Owner, identity.Name)
	docPath, err := deps.WriteDocument(cfg.OutDir, filename, doc)
	if err != nil {
		slog.Error("Klarte ikke skrive dokument", "error", err)
		return result, err
	}
	led.MarkDownloaded(job.ID)

	result.DocumentPath = docPath
	slog.Info("📝 Dokument skrevet", "path", docPath)
	return result, nil
}

func resolveIdentity(cfg config.Config) (models.RepoIdentity, error) {
	if cfg.RepoURL != "" {
		return fetcher.ParseRepoURL(cfg.RepoURL)
	}

	parts := strings.SplitN(cfg.Repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return models.RepoIdentity{}, &fetcher.ValidationError{Msg: fmt.Sprintf("REPO må være på formen owner/navn: %q", cfg.Repo)}
	}
	return models.RepoIdentity{Owner: parts[0], Name: parts[1]}, nil
}

// resolveCredential velger påloggingsmodus: GitHub App hvis
// konfigurert, ellers brukertoken, ellers public mode.
func resolveCredential(ctx context.Context, cfg config.Config) (fetcher.Credential, error) {
	if cfg.AppID != "" {
		return fetcher.AppCredential(ctx, cfg.AppID, cfg.AppInstallationID, cfg.AppPrivateKeyPath)
	}
	if cfg.Token != "" {
		return fetcher.UserCredential(cfg.Token)
	}
	slog.Info("Ingen token – kjører i public mode")
	return fetcher.Anonymous(), nil
}
