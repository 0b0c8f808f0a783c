package source

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/domain"
)

// RunAll fetches every source concurrently and concatenates the batches in
// fetcher order, so the reconciliation input is deterministic for a given
// fetcher list. Best effort: a dead source logs and contributes nothing.
func RunAll(ctx context.Context, fetchers []Fetcher, timeout time.Duration) []domain.JobRecord {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	results := make([]Result, len(fetchers))

	var g errgroup.Group
	for i, f := range fetchers {
		i, f := i, f

		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			log.Printf("[%s] running...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[source:%s] error: %v", f.Name(), err)
				return nil // don't cancel siblings
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.JobRecord
	for _, res := range results {
		if len(res.Records) == 0 {
			continue
		}
		log.Printf("[source:%s] gathered %d record(s)", res.Source, len(res.Records))
		out = append(out, res.Records...)
	}
	return out
}
