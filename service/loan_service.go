package service

import (
	"context"
	"encoding/json"
	"time"

	"loan-calculator/domain"
	"loan-calculator/logger"
	"loan-calculator/repository"
)

// Tiempo máximo por operación de caché; al vencer se recalcula
const cacheTimeout = 250 * time.Millisecond

type LoanService struct {
	cache        repository.CacheRepository
	cacheTimeout time.Duration
	log          *logger.Logger
}

// NewLoanService creates a new LoanService backed by the given result cache.
// A nil cache disables memoization.
func NewLoanService(cache repository.CacheRepository, log *logger.Logger) *LoanService {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &LoanService{
		cache:        cache,
		cacheTimeout: cacheTimeout,
		log:          log.WithComponent(logger.ComponentLoan),
	}
}

// CalculateLoan returns the amortization result for already validated terms.
// Cached results are reused; cache failures only cost a recomputation.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	terms domain.LoanTerms,
) domain.AmortizationResult {

	key := repository.CacheKey(terms)

	getCtx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	cached, ok := s.cache.Get(getCtx, key)
	cancel()
	if ok {
		var result domain.AmortizationResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			s.log.DebugContext(ctx, "amortization served from cache", "key", key)
			return result
		}
		s.log.WarnContext(ctx, "discarding unreadable cache entry", "key", key)
	}

	result := Calculate(terms)

	// Guardar en caché (no crítico si falla)
	data, err := json.Marshal(result)
	if err != nil {
		s.log.WarnContext(ctx, "failed to encode amortization for cache", logger.FieldError, err)
		return result
	}
	setCtx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
	defer cancel()
	if err := s.cache.Set(setCtx, key, string(data)); err != nil {
		s.log.WarnContext(ctx, "failed to cache amortization", "key", key, logger.FieldError, err)
	}

	return result
}
