package etl

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"purchase-etl/pkg/models"
)

// Pipeline wires the extract, transform and load stages for one run.
type Pipeline struct {
	Extractor      Extractor
	Loader         Loader
	Window         time.Duration
	Since          time.Time // zero means "now - Window"
	DryRun         bool
	CheckpointFile string // empty disables checkpointing
}

func NewPipeline(ext Extractor, loader Loader, window time.Duration) *Pipeline {
	return &Pipeline{
		Extractor: ext,
		Loader:    loader,
		Window:    window,
	}
}

// Run executes one extraction, one transformation pass and the batch
// deliveries. Extraction failure aborts the run; delivery failures are
// aggregated into the returned report instead.
//
// With checkpointing enabled, the lower bound of the window is the start
// time of the previous fully successful run, and this run's start time is
// persisted only when every batch delivered, so failed data stays inside
// the next window.
func (p *Pipeline) Run(ctx context.Context) (models.DeliveryReport, error) {
	start := time.Now()

	since := p.Since
	if since.IsZero() {
		since = start.Add(-p.Window)
		if p.CheckpointFile != "" {
			if t, ok := loadCheckpoint(p.CheckpointFile); ok {
				since = t
				slog.Info("Resuming from checkpoint", "since", since.Format(time.RFC3339))
			}
		}
	}

	slog.Info("Starting ETL run",
		"since", since.Format(time.RFC3339), "dry_run", p.DryRun)

	purchases, err := p.Extractor.Extract(ctx, since)
	if err != nil {
		return models.DeliveryReport{}, err
	}

	batches := Transform(purchases)

	if p.DryRun {
		for _, b := range batches {
			slog.Info("[DRY RUN] Would deliver batch",
				"category_id", b.CategoryID, "records", len(b.Data))
		}
		slog.Info("[DRY RUN] Run complete", "categories", len(batches))
		return models.DeliveryReport{}, nil
	}

	report := p.Loader.Load(ctx, batches)

	if p.CheckpointFile != "" && report.Failures() == 0 {
		saveCheckpoint(p.CheckpointFile, start)
	}

	duration := time.Since(start)
	rate := 0.0
	if duration.Seconds() > 0 {
		rate = float64(len(purchases)) / duration.Seconds()
	}
	slog.Info("ETL run finished",
		"records", len(purchases),
		"succeeded", report.Successes(),
		"failed", report.Failures(),
		"elapsed", duration.Round(time.Millisecond),
		"rate", rate)

	return report, nil
}

func loadCheckpoint(filename string) (time.Time, bool) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		slog.Warn("Ignoring malformed checkpoint", "file", filename, "error", err)
		return time.Time{}, false
	}
	return t, true
}

func saveCheckpoint(filename string, t time.Time) {
	if err := os.WriteFile(filename, []byte(t.Format(time.RFC3339)), 0644); err != nil {
		slog.Warn("Failed to save checkpoint", "file", filename, "error", err)
	}
}
