package etl

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// The extractor only depends on database/sql, so tests run against an
// in-memory SQLite database instead of a live Postgres instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE purchases (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		item TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		category_id INTEGER NOT NULL,
		timestamp TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("failed to create purchases table: %v", err)
	}
	return db
}

func insertPurchase(t *testing.T, db *sql.DB, id, userID int, item string, quantity int, price float64, categoryID int, ts any) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO purchases (id, user_id, item, quantity, price, category_id, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, userID, item, quantity, price, categoryID, ts)
	if err != nil {
		t.Fatalf("failed to insert purchase %d: %v", id, err)
	}
}

func TestExtractColumnMapping(t *testing.T) {
	db := newTestDB(t)
	when := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	insertPurchase(t, db, 1, 7, "mug", 2, 5.0, 1, when)

	purchases, err := NewPurchaseExtractor(db).Extract(context.Background(), when.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(purchases) != 1 {
		t.Fatalf("got %d purchases, want 1", len(purchases))
	}

	p := purchases[0]
	if p.ID != 1 || p.UserID != 7 || p.Item != "mug" || p.Quantity != 2 ||
		p.Price != 5.0 || p.CategoryID != 1 {
		t.Errorf("mapped purchase = %+v", p)
	}
	if p.Timestamp == nil || !p.Timestamp.Equal(when) {
		t.Errorf("Timestamp = %v, want %v", p.Timestamp, when)
	}
}

func TestExtractWindowIsInclusive(t *testing.T) {
	db := newTestDB(t)
	since := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	insertPurchase(t, db, 1, 7, "old", 1, 1.0, 1, since.Add(-time.Hour))
	insertPurchase(t, db, 2, 7, "boundary", 1, 1.0, 1, since)
	insertPurchase(t, db, 3, 7, "recent", 1, 1.0, 1, since.Add(time.Hour))
	insertPurchase(t, db, 4, 7, "degenerate", 1, 1.0, 1, nil)

	purchases, err := NewPurchaseExtractor(db).Extract(context.Background(), since)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(purchases) != 2 {
		t.Fatalf("got %d purchases, want 2 (boundary and recent)", len(purchases))
	}
	got := map[string]bool{}
	for _, p := range purchases {
		got[p.Item] = true
	}
	if !got["boundary"] || !got["recent"] {
		t.Errorf("extracted items = %v, want boundary and recent", got)
	}
}

func TestExtractEmptyWindow(t *testing.T) {
	db := newTestDB(t)
	insertPurchase(t, db, 1, 7, "mug", 2, 5.0, 1,
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	purchases, err := NewPurchaseExtractor(db).Extract(context.Background(),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(purchases) != 0 {
		t.Errorf("got %d purchases, want 0", len(purchases))
	}
}

func TestExtractTransformRoundTrip(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	insertPurchase(t, db, 1, 7, "mug", 2, 5.0, 1, base)
	insertPurchase(t, db, 2, 8, "towel", 3, 2.5, 2, base.Add(5*time.Minute))
	insertPurchase(t, db, 3, 7, "plate", 1, 4.0, 1, base.Add(10*time.Minute))

	purchases, err := NewPurchaseExtractor(db).Extract(context.Background(), base)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	batches := Transform(purchases)
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}

	wants := map[int]string{
		1: `{"category_id":1,"data":[` +
			`{"user_id":7,"item_name":"MUG","total_spent":10,"timestamp":"2024-01-01T00:00:00Z"},` +
			`{"user_id":7,"item_name":"PLATE","total_spent":4,"timestamp":"2024-01-01T00:10:00Z"}]}`,
		2: `{"category_id":2,"data":[` +
			`{"user_id":8,"item_name":"TOWEL","total_spent":7.5,"timestamp":"2024-01-01T00:05:00Z"}]}`,
	}
	for id, want := range wants {
		data, err := json.Marshal(batches[id])
		if err != nil {
			t.Fatalf("category %d: Marshal failed: %v", id, err)
		}
		if string(data) != want {
			t.Errorf("category %d payload = %s, want %s", id, data, want)
		}
	}
}

func TestExtractQueryErrorSurfaces(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	// No purchases table: the query must be rejected, not swallowed.
	_, err = NewPurchaseExtractor(db).Extract(context.Background(), time.Now())
	if err == nil {
		t.Fatal("Extract returned nil error against a missing table")
	}
	var dsErr *DataSourceError
	if !errors.As(err, &dsErr) {
		t.Errorf("err = %v, want *DataSourceError", err)
	}
}
