// Package httpapi is the read-only display surface over the sqlite archive.
package httpapi

import (
	"database/sql"
	"net/http"
	"time"
)

type Deps struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	rh := RecordsHandler{DB: d.DB, Now: d.Now}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Health,
	}))
	mux.HandleFunc("/records", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))
	mux.HandleFunc("/records/due-today", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.DueToday,
	}))
	mux.HandleFunc("/records/due-tomorrow", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.DueTomorrow,
	}))

	return mux
}
