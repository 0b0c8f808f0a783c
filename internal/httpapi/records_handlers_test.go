package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/store"
)

var now = time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, records []domain.JobRecord) *httptest.Server {
	t.Helper()

	db, err := store.OpenArchive(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.MigrateArchive(db))
	require.NoError(t, store.Snapshot(context.Background(), db, records))

	srv := httptest.NewServer(NewMux(Deps{DB: db, Now: func() time.Time { return now }}))
	t.Cleanup(srv.Close)
	return srv
}

func getRecords(t *testing.T, url string) []domain.JobRecord {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out []domain.JobRecord
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestRecordsEndpoints(t *testing.T) {
	srv := newTestServer(t, []domain.JobRecord{
		{ID: "siteA_1", Title: "백엔드 신입", Deadline: "02.15", ScrapedAt: now},
		{ID: "siteB_2", Title: "프론트엔드", Deadline: "02.16", ScrapedAt: now},
		{ID: "siteC_3", Title: "상시 공고", Deadline: "상시채용", ScrapedAt: now},
	})

	all := getRecords(t, srv.URL+"/records")
	assert.Len(t, all, 3)

	today := getRecords(t, srv.URL+"/records/due-today")
	require.Len(t, today, 1)
	assert.Equal(t, "siteA_1", today[0].ID)

	tomorrow := getRecords(t, srv.URL+"/records/due-tomorrow")
	require.Len(t, tomorrow, 1)
	assert.Equal(t, "siteB_2", tomorrow[0].ID)
}

func TestRecordsEmptyIsArray(t *testing.T) {
	srv := newTestServer(t, nil)

	res, err := http.Get(srv.URL + "/records")
	require.NoError(t, err)
	defer res.Body.Close()

	var buf [4]byte
	n, _ := res.Body.Read(buf[:])
	assert.Equal(t, "[]", string(buf[:2]), "empty collection serves as [], got %q", string(buf[:n]))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	res, err := http.Post(srv.URL+"/records", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
