package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
)

func TestFileStoreLoadMissing(t *testing.T) {
	s := FileStore{Path: filepath.Join(t.TempDir(), "records.json")}
	assert.Empty(t, s.Load())
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := FileStore{Path: path}
	assert.Empty(t, s.Load(), "corrupt store degrades to empty, not a crash")
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := FileStore{Path: filepath.Join(t.TempDir(), "records.json")}

	records := []domain.JobRecord{
		{
			ID:            "jobkorea_100",
			Source:        "jobkorea",
			Title:         "백엔드 신입",
			Company:       "(주)가나다",
			Link:          "https://example.com/100",
			Deadline:      "02.28",
			HiddenKeyword: "백엔드",
			ScrapedAt:     time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC),
			IsNew:         true,
		},
	}

	require.NoError(t, s.Save(records))
	got := s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, records[0], got[0])
}

func TestFileStoreSaveKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	s := FileStore{Path: path}

	require.NoError(t, s.Save([]domain.JobRecord{{ID: "a_1"}}))
	require.NoError(t, s.Save([]domain.JobRecord{{ID: "a_2"}}))

	_, err := os.Stat(path + ".bak")
	assert.NoError(t, err, "previous version kept as .bak")

	got := s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "a_2", got[0].ID)
}

func TestRunLockExcludesSecondRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	fl, err := AcquireRunLock(path)
	require.NoError(t, err)
	defer func() { _ = fl.Unlock() }()

	_, err = AcquireRunLock(path)
	assert.ErrorIs(t, err, ErrLocked)
}
