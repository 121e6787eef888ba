package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-calculator/domain"
	"loan-calculator/logger"
	"loan-calculator/repository"
)

type MockCache struct {
	Data       map[string]string
	GetCalls   int
	SetCalls   int
	ForceError bool
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.GetCalls++
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string) error {
	m.SetCalls++
	if m.ForceError {
		return errors.New("set error")
	}
	m.Data[key] = value
	return nil
}

func TestCalculateLoan_StoresResultInCache(t *testing.T) {
	cache := NewMockCache()
	service := NewLoanService(cache, logger.Discard())
	terms := domain.LoanTerms{Principal: 10000, AnnualRate: 0.05, TermYears: 2}

	result := service.CalculateLoan(context.Background(), terms)

	assert.Equal(t, 438.71, result.MonthlyPayment)
	assert.Equal(t, 1, cache.SetCalls)
	assert.Contains(t, cache.Data, repository.CacheKey(terms))
}

func TestCalculateLoan_CacheHitEqualsFreshResult(t *testing.T) {
	cache := NewMockCache()
	service := NewLoanService(cache, logger.Discard())
	terms := domain.LoanTerms{Principal: 250000, AnnualRate: 0.065, TermYears: 30}

	first := service.CalculateLoan(context.Background(), terms)
	second := service.CalculateLoan(context.Background(), terms)

	assert.Equal(t, first, second)
	assert.Equal(t, Calculate(terms), second)
	assert.Equal(t, 1, cache.SetCalls, "second call must be served from cache")
	assert.Equal(t, 2, cache.GetCalls)
}

func TestCalculateLoan_CacheErrorIsNotFatal(t *testing.T) {
	cache := NewMockCache()
	cache.ForceError = true
	service := NewLoanService(cache, logger.Discard())

	result := service.CalculateLoan(context.Background(), domain.LoanTerms{Principal: 1200, AnnualRate: 0, TermYears: 1})

	assert.Equal(t, 100.0, result.MonthlyPayment)
	assert.Len(t, result.AmortizationSchedule, 12)
}

func TestCalculateLoan_CorruptCacheEntryIsRecomputed(t *testing.T) {
	cache := NewMockCache()
	terms := domain.LoanTerms{Principal: 1200, AnnualRate: 0, TermYears: 1}
	cache.Data[repository.CacheKey(terms)] = "{not json"
	service := NewLoanService(cache, logger.Discard())

	result := service.CalculateLoan(context.Background(), terms)

	assert.Equal(t, 100.0, result.MonthlyPayment)
	assert.Equal(t, 1, cache.SetCalls)
}

func TestCalculateLoan_NilCache(t *testing.T) {
	service := NewLoanService(nil, nil)

	result := service.CalculateLoan(context.Background(), domain.LoanTerms{Principal: 10000, AnnualRate: 0.05, TermYears: 2})

	require.Len(t, result.AmortizationSchedule, 24)
	assert.Equal(t, 529.14, result.TotalInterest)
}

func TestCalculateLoan_WithMemoryCache(t *testing.T) {
	cache := repository.NewMemoryCache(time.Minute, time.Minute)
	service := NewLoanService(cache, logger.Discard())
	terms := domain.LoanTerms{Principal: 10000, AnnualRate: 0.05, TermYears: 2}

	first := service.CalculateLoan(context.Background(), terms)
	second := service.CalculateLoan(context.Background(), terms)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

// HangingCache blocks every call until the caller's context ends.
type HangingCache struct {
	Deadlines int
}

func (h *HangingCache) Get(ctx context.Context, _ string) (string, bool) {
	if _, ok := ctx.Deadline(); ok {
		h.Deadlines++
	}
	<-ctx.Done()
	return "", false
}

func (h *HangingCache) Set(ctx context.Context, _ string, _ string) error {
	if _, ok := ctx.Deadline(); ok {
		h.Deadlines++
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestCalculateLoan_SlowCacheIsBounded(t *testing.T) {
	cache := &HangingCache{}
	service := NewLoanService(cache, logger.Discard())
	service.cacheTimeout = 20 * time.Millisecond

	start := time.Now()
	result := service.CalculateLoan(context.Background(), domain.LoanTerms{Principal: 10000, AnnualRate: 0.05, TermYears: 2})

	assert.Equal(t, 438.71, result.MonthlyPayment)
	assert.Equal(t, 2, cache.Deadlines, "get and set must both carry a deadline")
	assert.Less(t, time.Since(start), 2*time.Second)
}
