package source

import (
	"context"

	"jobscout-engine/internal/domain"
)

type Result struct {
	Source  string
	Records []domain.JobRecord
}

// Fetcher gathers raw records from one external source. Fetchers own their
// retries and partial-failure policy; the engine only wants the final batch.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}
