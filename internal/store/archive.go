package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobscout-engine/internal/domain"
)

// The archive is a read-optimized sqlite snapshot of the reconciled
// collection, replaced wholesale each run. The JSON file stays the source of
// truth; the archive only feeds the display surface.

func MigrateArchive(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS records (
  id TEXT PRIMARY KEY,
  source TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  link TEXT NOT NULL DEFAULT '',
  deadline TEXT NOT NULL DEFAULT '',
  hidden_keyword TEXT NOT NULL DEFAULT '',
  scraped_at TEXT NOT NULL DEFAULT '',
  is_new INTEGER NOT NULL DEFAULT 0
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_records_scraped_at
ON records(scraped_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// Snapshot replaces the archive contents with the given collection.
func Snapshot(ctx context.Context, db *sql.DB, records []domain.JobRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records;`); err != nil {
		return fmt.Errorf("snapshot clear: %w", err)
	}

	for _, r := range records {
		isNew := 0
		if r.IsNew {
			isNew = 1
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO records (id, source, title, company, link, deadline, hidden_keyword, scraped_at, is_new)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			r.ID, r.Source, r.Title, r.Company, r.Link, r.Deadline, r.HiddenKeyword,
			r.ScrapedAt.UTC().Format(time.RFC3339), isNew,
		); err != nil {
			return fmt.Errorf("snapshot insert %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// ListRecords returns the archived collection, newest scrape first.
func ListRecords(ctx context.Context, db *sql.DB) ([]domain.JobRecord, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, source, title, company, link, deadline, hidden_keyword, scraped_at, is_new
FROM records
ORDER BY scraped_at DESC, id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobRecord
	for rows.Next() {
		var r domain.JobRecord
		var scrapedAt string
		var isNew int
		if err := rows.Scan(&r.ID, &r.Source, &r.Title, &r.Company, &r.Link,
			&r.Deadline, &r.HiddenKeyword, &scrapedAt, &isNew); err != nil {
			return nil, err
		}
		r.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		r.IsNew = isNew == 1
		out = append(out, r)
	}
	return out, rows.Err()
}
