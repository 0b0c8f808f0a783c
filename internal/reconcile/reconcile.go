// Package reconcile classifies freshly scraped records against the known
// collection: genuinely new vs. cross-source duplicate, then merge, then
// retirement of postings whose deadline has passed.
package reconcile

import (
	"log"
	"time"

	"jobscout-engine/internal/deadline"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/match"
)

// signature is the comparison key for cross-source dedup: a record's
// normalized company and title.
type signature struct {
	company string
	title   string
}

func signatureOf(r domain.JobRecord) signature {
	return signature{
		company: match.Normalize(r.Company),
		title:   match.Normalize(r.Title),
	}
}

// FindNew returns the scraped records that are genuinely new: unseen id and
// no signature match against the existing collection. Accepted records get
// ScrapedAt and IsNew set here, and their signatures join the scan list so
// near-identical records within the same batch collapse to the first one.
// Input order is preserved.
func FindNew(scraped, existing []domain.JobRecord, now time.Time) []domain.JobRecord {
	seen := make(map[string]struct{}, len(existing))
	sigs := make([]signature, 0, len(existing))
	for _, r := range existing {
		seen[r.ID] = struct{}{}
		sigs = append(sigs, signatureOf(r))
	}

	var out []domain.JobRecord
	for _, r := range scraped {
		if _, ok := seen[r.ID]; ok {
			continue
		}

		sig := signatureOf(r)
		if isDuplicate(sig, sigs) {
			log.Printf("[reconcile] cross-source duplicate dropped id=%s company=%q title=%q",
				r.ID, r.Company, r.Title)
			continue
		}

		r.ScrapedAt = now
		r.IsNew = true
		sigs = append(sigs, sig)
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// isDuplicate scans the signature list. Company equality is a hard
// short-circuit: a mismatch rules the candidate out no matter how close the
// titles are.
func isDuplicate(sig signature, sigs []signature) bool {
	for _, s := range sigs {
		if sig.company != s.company {
			continue
		}
		if match.SameEntity(sig.title, s.title) {
			return true
		}
	}
	return false
}

// Merge upserts fresh into existing by id and returns the union in insertion
// order (existing first, then unseen fresh ids in batch order). IsNew is a
// single-run signal: every pre-existing record is flipped to false, and an
// upsert onto a pre-existing id lands as not-new with its original ScrapedAt
// kept intact.
func Merge(existing, fresh []domain.JobRecord) []domain.JobRecord {
	out := make([]domain.JobRecord, 0, len(existing)+len(fresh))
	idx := make(map[string]int, len(existing))

	for _, r := range existing {
		r.IsNew = false
		idx[r.ID] = len(out)
		out = append(out, r)
	}

	for _, r := range fresh {
		if i, ok := idx[r.ID]; ok {
			r.ScrapedAt = out[i].ScrapedAt
			r.IsNew = false
			out[i] = r
			continue
		}
		idx[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}

// RetireExpired drops every record whose deadline parses to a date strictly
// before now. Unparseable deadlines (rolling postings) are kept. This is the
// only place a record leaves the store.
func RetireExpired(records []domain.JobRecord, now time.Time) []domain.JobRecord {
	var out []domain.JobRecord
	removed := 0
	for _, r := range records {
		if deadline.IsExpired(r.Deadline, now) {
			log.Printf("[reconcile] retiring expired id=%s deadline=%q", r.ID, r.Deadline)
			removed++
			continue
		}
		out = append(out, r)
	}
	if removed > 0 {
		log.Printf("[reconcile] retired %d expired record(s)", removed)
	}
	return out
}
