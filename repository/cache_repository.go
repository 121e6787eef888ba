package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"loan-calculator/domain"
)

// CacheRepository stores serialized amortization results. Implementations
// must be safe for concurrent use.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

const cacheKeyPrefix = "amortization:v1:"

// CacheKey derives a stable key for the given loan terms.
func CacheKey(terms domain.LoanTerms) string {
	raw := fmt.Sprintf("%s|%s|%d",
		strconv.FormatFloat(terms.Principal, 'g', -1, 64),
		strconv.FormatFloat(terms.AnnualRate, 'g', -1, 64),
		terms.TermYears,
	)
	return cacheKeyPrefix + strconv.FormatUint(xxhash.Sum64String(raw), 16)
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool) { return "", false }
func (NoopCache) Set(context.Context, string, string) error { return nil }
