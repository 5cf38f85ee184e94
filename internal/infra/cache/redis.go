package cache

import (
	"github.com/redis/go-redis/v9"

	"github.com/vitrine-app/vitrine-api/internal/config"
)

// New builds the shared redis client. Used for the resolved-user cache
// and the like-toggle mutex.
func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}
