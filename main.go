package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-calculator/config"
	httpLayer "loan-calculator/http"
	"loan-calculator/logger"
	"loan-calculator/repository"
	"loan-calculator/service"
)

func main() {
	cfg := config.Load()

	log := newLogger(cfg)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", logger.FieldError, err)
		os.Exit(1)
	}

	cache, closeCache := newCache(cfg, log)
	defer closeCache()

	loanService := service.NewLoanService(cache, log)

	server, err := httpLayer.NewServer(httpLayer.ServerConfig{
		Addr:              cfg.Addr(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		RateLimitCapacity: cfg.RateLimitCapacity,
		RateLimitWindow:   cfg.RateLimitWindow,
		CacheBackend:      cfg.CacheBackend,
		TrustProxy:        cfg.TrustProxy,
	}, loanService, log.WithComponent(logger.ComponentHTTP))
	if err != nil {
		log.Error("Error building server", logger.FieldError, err)
		os.Exit(1)
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Loan calculator listening",
			"addr", cfg.Addr(),
			"cache_backend", cfg.CacheBackend,
			"rate_limit", cfg.RateLimitCapacity,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("Error starting server", logger.FieldError, err)
		closeCache()
		os.Exit(1)
	case sig := <-quit:
		log.Info("Shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Error during server shutdown", logger.FieldError, err)
	}

	log.Info("Server exited")
}

func newLogger(cfg *config.Config) *logger.Logger {
	logCfg := logger.DefaultConfig()
	logCfg.Format = cfg.LogFormat
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logCfg.Level = level
	}
	return logger.New(logCfg)
}

// newCache builds the configured result cache. An unreachable Redis is
// reported but not fatal; lookups simply miss until it comes back.
func newCache(cfg *config.Config, log *logger.Logger) (repository.CacheRepository, func()) {
	cacheLog := log.WithComponent(logger.ComponentCache)

	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		rc := repository.NewRedisCache(repository.RedisOptions{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			TTL:         cfg.CacheTTL,
			DialTimeout: 2 * time.Second,
			MaxRetries:  -1,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			cacheLog.Warn("Redis not reachable, results will be recomputed", "addr", cfg.RedisAddr, logger.FieldError, err)
		} else {
			cacheLog.Info("Using Redis result cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		}

		var closed bool
		return rc, func() {
			if closed {
				return
			}
			closed = true
			if err := rc.Close(); err != nil {
				cacheLog.Warn("Error closing Redis client", logger.FieldError, err)
			}
		}
	case config.CacheBackendNone:
		cacheLog.Info("Result cache disabled")
		return repository.NoopCache{}, func() {}
	default:
		cacheLog.Info("Using in-memory result cache", "ttl", cfg.CacheTTL)
		return repository.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL), func() {}
	}
}
