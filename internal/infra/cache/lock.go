package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Lock is a best-effort distributed mutex over redis SETNX. It guards
// the like-toggle read-then-write window so two racing toggles of the
// same (project, user) pair cannot both observe "not liked".
type Lock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLock(rdb *redis.Client, ttl time.Duration) *Lock {
	return &Lock{rdb: rdb, ttl: ttl}
}

// TryLock attempts to take the key. On success it returns a release
// func that deletes the key only if this holder still owns it.
func (l *Lock) TryLock(ctx context.Context, key string) (func(), bool) {
	holder := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, holder, l.ttl).Result()
	if err != nil || !ok {
		return nil, false
	}

	release := func() {
		// compare-and-delete so an expired lock taken over by another
		// holder is never released by us
		const script = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
		_ = l.rdb.Eval(context.Background(), script, []string{key}, holder).Err()
	}
	return release, true
}
