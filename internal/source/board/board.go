// Package board is the generic listing-page fetcher. Which elements hold the
// title, company and deadline is entirely config-driven (CSS selectors), so
// adding a source is a config edit, not a code change.
package board

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/fetch"
	"jobscout-engine/internal/source"
)

type Fetcher struct {
	cfg    config.Board
	client *fetch.Client
}

func New(cfg config.Board, client *fetch.Client) *Fetcher {
	return &Fetcher{cfg: cfg, client: client}
}

func (f *Fetcher) Name() string { return f.cfg.Name }

func (f *Fetcher) Fetch(ctx context.Context) (source.Result, error) {
	res, err := f.client.Get(ctx, f.cfg.URL)
	if err != nil {
		return source.Result{Source: f.cfg.Name}, fmt.Errorf("board %s: %w", f.cfg.Name, err)
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return source.Result{Source: f.cfg.Name}, fmt.Errorf("board %s: parse html: %w", f.cfg.Name, err)
	}

	return source.Result{Source: f.cfg.Name, Records: f.parse(doc)}, nil
}

func (f *Fetcher) parse(doc *goquery.Document) []domain.JobRecord {
	sel := f.cfg.Selectors
	seen := map[string]bool{}

	var out []domain.JobRecord
	doc.Find(sel.Item).Each(func(_ int, item *goquery.Selection) {
		link := f.itemLink(item)
		if link == "" {
			return
		}

		id := domain.MakeID(f.cfg.Name, nativeID(link))
		if seen[id] {
			return
		}
		seen[id] = true

		// Records enter the system through the raw-bag boundary; a selector
		// that matches nothing just leaves its field empty.
		out = append(out, domain.FromRaw(map[string]string{
			"id":             id,
			"source":         f.cfg.Name,
			"title":          cleanText(item.Find(sel.Title).First().Text()),
			"company":        cleanText(item.Find(sel.Company).First().Text()),
			"deadline":       cleanText(item.Find(sel.Deadline).First().Text()),
			"link":           link,
			"hidden_keyword": f.cfg.Keyword,
		}))
	})
	return out
}

func (f *Fetcher) itemLink(item *goquery.Selection) string {
	anchor := item.Find(f.cfg.Selectors.Link).First()
	href, ok := anchor.Attr("href")
	if !ok {
		return ""
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	base, err := url.Parse(f.cfg.URL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// nativeID derives a stable per-source id from the posting link: the digit
// run in the last path segment when there is one, otherwise a hash of the
// whole link. Either way the record id stays well-formed.
func nativeID(link string) string {
	if u, err := url.Parse(link); err == nil {
		segs := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i := len(segs) - 1; i >= 0; i-- {
			if d := digitRun(segs[i]); d != "" {
				return d
			}
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(link))
	return fmt.Sprintf("%08x", h.Sum32())
}

func digitRun(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
