package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/modules/model"
)

const userKeyPrefix = "auth:user:"

// UserCache keeps resolved identities for the token TTL window so a
// bearer token is resolved against the store once per credential, not
// once per request. Cache failures degrade to a store lookup.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewUserCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *UserCache) GetUser(ctx context.Context, id string) (*model.User, bool) {
	raw, err := c.rdb.Get(ctx, userKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Sugar().Debugw("user cache read failed", "err", err)
		}
		return nil, false
	}

	u := new(model.User)
	if err := sonic.Unmarshal(raw, u); err != nil {
		return nil, false
	}
	return u, true
}

func (c *UserCache) SetUser(ctx context.Context, u *model.User) {
	raw, err := sonic.Marshal(u)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, userKeyPrefix+u.ID, raw, c.ttl).Err(); err != nil {
		c.log.Sugar().Debugw("user cache write failed", "err", err)
	}
}
