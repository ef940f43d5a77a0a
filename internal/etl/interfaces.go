package etl

import (
	"context"
	"time"

	"purchase-etl/pkg/models"
)

type Extractor interface {
	Extract(ctx context.Context, since time.Time) ([]models.Purchase, error)
}

type Loader interface {
	Load(ctx context.Context, batches map[int]*models.APIBatch) models.DeliveryReport
}
