package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SearchCache stores job search results. SetIfNotExists guards a single
// rebuild per key while the entry is cold; the holder Deletes the lock once
// the entry is written.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// invalidateJobSearch drops every cached search result. Anything that changes
// a field of a cached job.Job, including the company name, calls it.
func invalidateJobSearch(ctx context.Context, cache SearchCache, logger *logrus.Logger) {
	if cache == nil {
		return
	}
	if err := cache.DeleteByPattern(ctx, jobsSearchPattern); err != nil && logger != nil {
		logger.WithError(err).Warn("jobs search cache invalidation failed")
	}
}
