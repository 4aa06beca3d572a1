package usecase

import (
	"context"
	"time"

	"jobmatch/internal/domain/job"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Snapshot is one cached fetch of upstream postings. It is written whole and
// never patched.
type Snapshot struct {
	Jobs      []job.Posting `json:"jobs"`
	FetchedAt int64         `json:"fetchedAt"`
}
