package domain

import (
	"fmt"
	"time"
)

// JobRecord is one scraped posting. The JSON tags double as the persisted
// store format, so renaming a field is a store migration.
type JobRecord struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Title         string    `json:"title"`
	Company       string    `json:"company"`
	Link          string    `json:"link"`
	Deadline      string    `json:"deadline"` // free text, formats vary by source
	HiddenKeyword string    `json:"hidden_keyword"`
	ScrapedAt     time.Time `json:"scraped_at"`
	IsNew         bool      `json:"is_new"`
}

// MakeID builds the source-qualified merge key, e.g. "jobkorea_49021".
func MakeID(source, nativeID string) string {
	return fmt.Sprintf("%s_%s", source, nativeID)
}

// FromRaw ingests a loosely-typed scraped bag. Absent keys default to "";
// a partial record is still worth keeping for display.
func FromRaw(raw map[string]string) JobRecord {
	get := func(k string) string {
		if v, ok := raw[k]; ok {
			return v
		}
		return ""
	}
	return JobRecord{
		ID:            get("id"),
		Source:        get("source"),
		Title:         get("title"),
		Company:       get("company"),
		Link:          get("link"),
		Deadline:      get("deadline"),
		HiddenKeyword: get("hidden_keyword"),
	}
}
