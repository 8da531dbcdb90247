package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"job-connect/internal/domain/job"
)

const (
	jobsSearchPrefix  = "jobs:search:"
	jobsLockPrefix    = "jobs:lock:"
	jobsSearchPattern = jobsSearchPrefix + "*"
)

type jobSearchCacheKeyInput struct {
	Query string `json:"q"`
}

func normalizeSearchValue(s string) string {
	return strings.ToLower(job.NormalizeQuery(s))
}

// JobsSearchCacheKey is stable across case and surrounding whitespace in q.
func JobsSearchCacheKey(q string) string {
	b, _ := json.Marshal(jobSearchCacheKeyInput{Query: normalizeSearchValue(q)})
	sum := sha256.Sum256(b)
	return jobsSearchPrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	return jobsLockPrefix + strings.TrimPrefix(searchKey, jobsSearchPrefix)
}
