package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"purchase-etl/internal/config"
	"purchase-etl/internal/etl"
	"purchase-etl/pkg/database"
	"purchase-etl/pkg/logger"
)

func runPipeline(opts *RunOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	db, err := database.ConnectPostgres(cfg.PGConnString)
	if err != nil {
		return err
	}
	defer db.Close()

	loader := etl.NewAPILoader(etl.LoaderConfig{
		Endpoint: cfg.APIEndpoint,
		Token:    cfg.APIToken,
	})

	pipeline := etl.NewPipeline(etl.NewPurchaseExtractor(db), loader, opts.Window)
	pipeline.DryRun = opts.DryRun
	pipeline.CheckpointFile = opts.CheckpointFile

	if opts.Since != "" {
		since, err := time.Parse(time.RFC3339, opts.Since)
		if err != nil {
			return fmt.Errorf("invalid --since value %q: %w", opts.Since, err)
		}
		pipeline.Since = since
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	if n := report.Failures(); n > 0 {
		return fmt.Errorf("%d of %d batch deliveries failed (categories %v)",
			n, len(report.Results), report.FailedCategories())
	}
	return nil
}
