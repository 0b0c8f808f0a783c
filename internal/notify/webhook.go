// Package notify posts the per-run digest to a chat webhook. What gets
// announced is decided upstream: consumers key off is_new and the deadline
// predicates; this package only formats and delivers.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobscout-engine/internal/domain"
)

type Item struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Link     string `json:"link"`
	Deadline string `json:"deadline"`
	Category string `json:"category"`
}

type Digest struct {
	GeneratedAt time.Time `json:"generated_at"`
	New         []Item    `json:"new"`
	DueToday    []Item    `json:"due_today"`
	DueTomorrow []Item    `json:"due_tomorrow"`
}

// CategoryFunc routes a record's hidden keyword to a category label.
type CategoryFunc func(keyword string) string

type Webhook struct {
	URL string
	HC  *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL: url,
		HC:  &http.Client{Timeout: 15 * time.Second},
	}
}

// BuildDigest assembles the outgoing payload from the derived subsets.
func BuildDigest(newRecords, dueToday, dueTomorrow []domain.JobRecord, categoryFor CategoryFunc, now time.Time) Digest {
	return Digest{
		GeneratedAt: now.UTC(),
		New:         items(newRecords, categoryFor),
		DueToday:    items(dueToday, categoryFor),
		DueTomorrow: items(dueTomorrow, categoryFor),
	}
}

// Empty reports whether there is nothing worth announcing.
func (d Digest) Empty() bool {
	return len(d.New) == 0 && len(d.DueToday) == 0 && len(d.DueTomorrow) == 0
}

func (w *Webhook) Send(ctx context.Context, d Digest) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("notify: marshal digest: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := w.HC.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post webhook: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("notify: webhook status %d", res.StatusCode)
	}
	return nil
}

func items(records []domain.JobRecord, categoryFor CategoryFunc) []Item {
	var out []Item
	for _, r := range records {
		category := ""
		if categoryFor != nil {
			category = categoryFor(r.HiddenKeyword)
		}
		out = append(out, Item{
			Title:    r.Title,
			Company:  r.Company,
			Link:     r.Link,
			Deadline: r.Deadline,
			Category: category,
		})
	}
	return out
}
