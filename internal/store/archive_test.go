package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
)

func newTestArchive(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenArchive(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, MigrateArchive(db))
	return db
}

func TestArchiveSnapshotAndList(t *testing.T) {
	db := newTestArchive(t)
	ctx := context.Background()

	older := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)

	records := []domain.JobRecord{
		{ID: "siteA_1", Source: "siteA", Title: "백엔드 신입", Company: "가나다",
			Deadline: "02.28", HiddenKeyword: "백엔드", ScrapedAt: older},
		{ID: "siteB_2", Source: "siteB", Title: "프론트엔드", Company: "마바사",
			Deadline: "상시채용", ScrapedAt: newer, IsNew: true},
	}
	require.NoError(t, Snapshot(ctx, db, records))

	got, err := ListRecords(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// newest scrape first
	assert.Equal(t, "siteB_2", got[0].ID)
	assert.True(t, got[0].IsNew)
	assert.Equal(t, newer, got[0].ScrapedAt)
	assert.Equal(t, "siteA_1", got[1].ID)
	assert.Equal(t, "02.28", got[1].Deadline)
}

func TestArchiveSnapshotReplacesWholesale(t *testing.T) {
	db := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, Snapshot(ctx, db, []domain.JobRecord{{ID: "siteA_1"}, {ID: "siteA_2"}}))
	require.NoError(t, Snapshot(ctx, db, []domain.JobRecord{{ID: "siteB_9"}}))

	got, err := ListRecords(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "siteB_9", got[0].ID)
}

func TestMigrateArchiveIdempotent(t *testing.T) {
	db := newTestArchive(t)
	assert.NoError(t, MigrateArchive(db))
}
