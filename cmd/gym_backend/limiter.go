package main

import (
	"fmt"

	"github.com/SscSPs/gym_management_app/internal/platform/config"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// newAuthLimiter builds the limiter guarding the credential endpoints. Counts are
// shared through redis when REDIS_URL is set, per process otherwise.
func newAuthLimiter(cfg *config.Config) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}

	if cfg.RedisURL == "" {
		return limiter.New(memory.NewStore(), rate), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	store, err := sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{
		Prefix: "gym_auth_limiter",
	})
	if err != nil {
		return nil, fmt.Errorf("create redis limiter store: %w", err)
	}
	return limiter.New(store, rate), nil
}
