package etl

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"purchase-etl/pkg/models"
)

// Column order here is the contract; Scan targets below must stay in sync.
const purchaseQuery = `
	SELECT id, user_id, item, quantity, price, category_id, timestamp
	FROM purchases
	WHERE timestamp >= $1`

// PurchaseExtractor reads purchases from the relational source.
type PurchaseExtractor struct {
	DB *sql.DB
}

func NewPurchaseExtractor(db *sql.DB) *PurchaseExtractor {
	return &PurchaseExtractor{DB: db}
}

// Extract runs one query for all purchases with timestamp >= since
// (inclusive) and maps each row into a Purchase. Source faults are returned
// as *DataSourceError, never as a silent empty result.
func (e *PurchaseExtractor) Extract(ctx context.Context, since time.Time) ([]models.Purchase, error) {
	slog.Info("Retrieving purchases", "since", since.Format(time.RFC3339))

	rows, err := e.DB.QueryContext(ctx, purchaseQuery, since)
	if err != nil {
		return nil, &DataSourceError{Op: "query purchases", Err: err}
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		var ts sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.Item, &p.Quantity, &p.Price, &p.CategoryID, &ts); err != nil {
			return nil, &DataSourceError{Op: "scan purchase row", Err: err}
		}
		if ts.Valid {
			t := ts.Time
			p.Timestamp = &t
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Op: "iterate purchase rows", Err: err}
	}

	slog.Info("Retrieved purchases", "rows", len(purchases))
	return purchases, nil
}
