package etl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"purchase-etl/pkg/models"
)

// LoaderConfig carries everything the Loader needs, injected by the caller
// so delivery logic never reads the process environment itself.
type LoaderConfig struct {
	Endpoint      string
	Token         string
	Timeout       time.Duration // per-attempt timeout
	RetryCount    int           // retries beyond the first attempt
	RetryWaitTime time.Duration
	RetryMaxWait  time.Duration
}

// Status codes that mark an attempt as transient and eligible for retry.
var retryableStatus = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// APILoader delivers batches to the ingest endpoint over one shared HTTP
// client. The client (connection pool, auth, retry policy) is built once
// per run, not per batch.
type APILoader struct {
	endpoint string
	client   *resty.Client
}

func NewAPILoader(cfg LoaderConfig) *APILoader {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryCount == 0 {
		cfg.RetryCount = 3
	}
	if cfg.RetryWaitTime == 0 {
		cfg.RetryWaitTime = time.Second
	}
	if cfg.RetryMaxWait == 0 {
		cfg.RetryMaxWait = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetAuthToken(cfg.Token).
		SetHeader("Content-Type", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return retryableStatus[r.StatusCode()]
		}).
		AddRetryHook(func(r *resty.Response, err error) {
			if err != nil {
				slog.Warn("Retrying batch delivery", "error", err)
				return
			}
			slog.Warn("Retrying batch delivery", "status", r.StatusCode())
		})

	return &APILoader{endpoint: cfg.Endpoint, client: client}
}

// Load delivers every batch and aggregates per-batch outcomes. A failed
// batch never prevents delivery of the remaining ones. Batches are sent in
// ascending category_id order so runs and logs are deterministic. An empty
// input is a no-op report.
func (l *APILoader) Load(ctx context.Context, batches map[int]*models.APIBatch) models.DeliveryReport {
	var report models.DeliveryReport
	if len(batches) == 0 {
		slog.Warn("No batches to deliver")
		return report
	}

	ids := make([]int, 0, len(batches))
	for id := range batches {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		res := l.sendBatch(ctx, batches[id])
		if res.Err != nil {
			slog.Error("Batch delivery failed",
				"category_id", id, "attempts", res.Attempts, "error", res.Err)
		} else {
			slog.Info("Batch delivered",
				"category_id", id, "records", res.Records, "attempts", res.Attempts)
		}
		report.Results = append(report.Results, res)
	}

	slog.Info("Deliveries complete",
		"succeeded", report.Successes(), "failed", report.Failures())
	return report
}

func (l *APILoader) sendBatch(ctx context.Context, batch *models.APIBatch) models.BatchResult {
	slog.Info("Sending batch", "category_id", batch.CategoryID, "records", len(batch.Data))

	req := l.client.R().SetContext(ctx).SetBody(batch)
	resp, err := req.Post(l.endpoint)

	result := models.BatchResult{
		CategoryID: batch.CategoryID,
		Records:    len(batch.Data),
		Attempts:   req.Attempt,
	}

	switch {
	case err != nil:
		// Network-level fault that survived every retry.
		result.Err = &PermanentDeliveryError{
			CategoryID: batch.CategoryID,
			Attempts:   req.Attempt,
			Err:        &TransientDeliveryError{Err: err},
		}
	case resp.IsSuccess():
		// 200-299, nothing to record.
	case retryableStatus[resp.StatusCode()]:
		// Transient status on the last allowed attempt: retries exhausted.
		result.Err = &PermanentDeliveryError{
			CategoryID: batch.CategoryID,
			StatusCode: resp.StatusCode(),
			Attempts:   req.Attempt,
			Err:        &TransientDeliveryError{StatusCode: resp.StatusCode()},
		}
	default:
		result.Err = &PermanentDeliveryError{
			CategoryID: batch.CategoryID,
			StatusCode: resp.StatusCode(),
			Attempts:   req.Attempt,
		}
	}
	return result
}
