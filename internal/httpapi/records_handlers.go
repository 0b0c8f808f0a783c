package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"jobscout-engine/internal/deadline"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/store"
)

type RecordsHandler struct {
	DB  *sql.DB
	Now func() time.Time
}

func (h RecordsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": true, "time": h.now().Format(time.RFC3339)})
}

func (h RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := store.ListRecords(r.Context(), h.DB)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, nonNil(records))
}

func (h RecordsHandler) DueToday(w http.ResponseWriter, r *http.Request) {
	records, err := store.ListRecords(r.Context(), h.DB)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, nonNil(deadline.DueToday(records, h.now())))
}

func (h RecordsHandler) DueTomorrow(w http.ResponseWriter, r *http.Request) {
	records, err := store.ListRecords(r.Context(), h.DB)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, nonNil(deadline.DueTomorrow(records, h.now())))
}

func (h RecordsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// nonNil keeps empty responses as [] instead of null.
func nonNil(records []domain.JobRecord) []domain.JobRecord {
	if records == nil {
		return []domain.JobRecord{}
	}
	return records
}
