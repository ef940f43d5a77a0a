package etl

import (
	"log/slog"
	"strings"
	"time"

	"purchase-etl/pkg/models"
)

// Transform partitions purchases by category_id into API batches. Pure
// function: one linear scan, a batch is created lazily on the first
// purchase of its category, and record order within a batch follows the
// input order. An empty input yields an empty map.
func Transform(purchases []models.Purchase) map[int]*models.APIBatch {
	slog.Info("Transforming purchases", "count", len(purchases))

	batches := make(map[int]*models.APIBatch)
	for _, p := range purchases {
		batch, ok := batches[p.CategoryID]
		if !ok {
			batch = &models.APIBatch{CategoryID: p.CategoryID}
			batches[p.CategoryID] = batch
		}

		var ts *string
		if p.Timestamp != nil {
			s := p.Timestamp.Format(time.RFC3339)
			ts = &s
		}
		batch.Data = append(batch.Data, models.APIRecord{
			UserID:     p.UserID,
			ItemName:   strings.ToUpper(p.Item),
			TotalSpent: p.TotalSpent(),
			Timestamp:  ts,
		})
	}

	slog.Info("Purchases grouped", "categories", len(batches))
	return batches
}
