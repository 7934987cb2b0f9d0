package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/jonmartinstorm/repokontekst/internal/aggregator"
	"github.com/jonmartinstorm/repokontekst/internal/bqwriter"
	"github.com/jonmartinstorm/repokontekst/internal/config"
	"github.com/jonmartinstorm/repokontekst/internal/fetcher"
	"github.com/jonmartinstorm/repokontekst/internal/ledger"
	"github.com/jonmartinstorm/repokontekst/internal/logger"
	"github.com/jonmartinstorm/repokontekst/internal/runner"
	"github.com/jonmartinstorm/repokontekst/internal/store"
	"github.com/jonmartinstorm/repokontekst/internal/templates"
)

func main() {
	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	go func() {
		<-ctx.Done()
		slog.Info("SIGTERM mottatt – rydder opp...")
	}()

	cfg := config.LoadConfigWithEnv(os.Getenv)
	logger.Setup(cfg.Debug)

	if err := config.ValidateConfig(cfg); err != nil {
		slog.Error("Ugyldig konfigurasjon", "error", err)
		os.Exit(1)
	}

	kv, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Klarte ikke åpne lagring", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	led := ledger.NewLedger(kv)
	registry := templates.NewRegistry(kv)

	deps := runner.RealDeps{
		GitHub:    fetcher.NewRepoFetcher(),
		Agg:       aggregator.NewAggregator(nil),
		Templates: registry,
	}

	result, err := runner.RunApp(ctx, cfg, deps, led)
	if err != nil {
		slog.Error("Applikasjonen feilet", "error", err)
		os.Exit(1)
	}

	if cfg.BQProjectID != "" {
		exportToBigQuery(ctx, cfg, result, led)
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.Storage == config.StoragePostgres {
		pg, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("✅ DB-tilkobling OK")
		return pg, func() {
			if cerr := pg.Close(); cerr != nil {
				slog.Warn("Klarte ikke å lukke databasen", "error", cerr)
			}
		}, nil
	}

	fs, err := store.NewFileStore(cfg.OutDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

// exportToBigQuery er best effort – en feilet eksport skal ikke gjøre
// en vellykket analyse om til en feilet kjøring.
func exportToBigQuery(ctx context.Context, cfg config.Config, result runner.Result, led *ledger.Ledger) {
	bq, err := bqwriter.NewBigQueryWriter(ctx, &cfg)
	if err != nil {
		slog.Error("Klarte ikke koble til BigQuery – hopper over eksport", "error", err)
		return
	}
	defer func() {
		if cerr := bq.Close(); cerr != nil {
			slog.Warn("Klarte ikke lukke BigQuery-klienten", "error", cerr)
		}
	}()

	snapshot := time.Now()

	slog.Info("🚀 Eksporterer til BigQuery", "dataset", cfg.BQDataset)
	if err := bq.ExportAnalysis(ctx, result.Analysis, snapshot); err != nil {
		slog.Error("BigQuery-eksport av analysen feilet", "error", err)
	}
	if err := bq.ExportJobs(ctx, led.List(), snapshot); err != nil {
		slog.Error("BigQuery-eksport av jobbhistorikken feilet", "error", err)
	}
}
