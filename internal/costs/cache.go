package costs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache persists cost reports per period so the expensive Cost Explorer
// call runs at most once a day per period. Entries are keyed by period
// and stamped with the fetch date; a stale stamp is simply a miss.
type Cache struct {
	db *sql.DB
}

func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "costs.db"))
	if err != nil {
		return nil, fmt.Errorf("open cost cache: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS cost_cache (
			period       TEXT PRIMARY KEY,
			fetched_date TEXT NOT NULL,
			payload      TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cost cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached payload for a period if it was stored on
// fetchDate, otherwise ok is false.
func (c *Cache) Get(period, fetchDate string) (payload string, ok bool, err error) {
	var storedDate string
	row := c.db.QueryRow(
		"SELECT fetched_date, payload FROM cost_cache WHERE period = ?", period)
	if err := row.Scan(&storedDate, &payload); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read cost cache: %w", err)
	}
	if storedDate != fetchDate {
		return "", false, nil
	}
	return payload, true, nil
}

func (c *Cache) Put(period, fetchDate, payload string) error {
	_, err := c.db.Exec(`
		INSERT INTO cost_cache (period, fetched_date, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(period) DO UPDATE SET
			fetched_date = excluded.fetched_date,
			payload      = excluded.payload
	`, period, fetchDate, payload)
	if err != nil {
		return fmt.Errorf("write cost cache: %w", err)
	}
	return nil
}
