package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Port:              "8080",
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
		CacheBackend:      CacheBackendMemory,
		CacheTTL:          15 * time.Minute,
		RedisAddr:         "localhost:6379",
		RateLimitCapacity: 5,
		RateLimitWindow:   time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid memory backend config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid redis backend config",
			mutate: func(c *Config) { c.CacheBackend = CacheBackendRedis },
		},
		{
			name: "cache disabled ignores ttl",
			mutate: func(c *Config) {
				c.CacheBackend = CacheBackendNone
				c.CacheTTL = 0
			},
		},
		{
			name: "rate limiting disabled ignores window",
			mutate: func(c *Config) {
				c.RateLimitCapacity = 0
				c.RateLimitWindow = 0
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "invalid cache backend",
			mutate:      func(c *Config) { c.CacheBackend = "memcached" },
			wantErr:     true,
			errorString: "invalid cache backend 'memcached'",
		},
		{
			name: "redis backend missing address",
			mutate: func(c *Config) {
				c.CacheBackend = CacheBackendRedis
				c.RedisAddr = ""
			},
			wantErr:     true,
			errorString: "Redis address cannot be empty when using redis cache backend",
		},
		{
			name:        "non-positive cache ttl",
			mutate:      func(c *Config) { c.CacheTTL = 0 },
			wantErr:     true,
			errorString: "invalid cache TTL 0s: must be positive",
		},
		{
			name:        "negative rate limit capacity",
			mutate:      func(c *Config) { c.RateLimitCapacity = -1 },
			wantErr:     true,
			errorString: "invalid rate limit capacity -1",
		},
		{
			name:        "rate limit window too short",
			mutate:      func(c *Config) { c.RateLimitWindow = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid rate limit window 500ms: must be at least 1 second",
		},
		{
			name:        "zero write timeout",
			mutate:      func(c *Config) { c.WriteTimeout = 0 },
			wantErr:     true,
			errorString: "invalid write timeout 0s: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.CacheBackend = "bogus"

	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "invalid port")
		assert.Contains(t, err.Error(), "invalid cache backend")
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "CACHE_BACKEND", "CACHE_TTL",
		"REDIS_ADDR", "REDIS_DB", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_WINDOW",
		"READ_TIMEOUT", "TRUST_PROXY",
	} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
		assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
		assert.Equal(t, 5, cfg.RateLimitCapacity)
		assert.Equal(t, time.Minute, cfg.RateLimitWindow)
		assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
		assert.False(t, cfg.TrustProxy)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("CACHE_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "cache:6380")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("RATE_LIMIT_CAPACITY", "20")
		t.Setenv("RATE_LIMIT_WINDOW", "30s")
		t.Setenv("TRUST_PROXY", "true")

		cfg := Load()

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
		assert.Equal(t, "cache:6380", cfg.RedisAddr)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, 20, cfg.RateLimitCapacity)
		assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
		assert.True(t, cfg.TrustProxy)
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_CAPACITY", "many")
		t.Setenv("CACHE_TTL", "forever")
		t.Setenv("TRUST_PROXY", "maybe")

		cfg := Load()

		assert.Equal(t, 5, cfg.RateLimitCapacity)
		assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
		assert.False(t, cfg.TrustProxy)
	})
}
