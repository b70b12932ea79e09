package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"hostel_pms/internal/adapters/observability"
	"hostel_pms/internal/domain"
)

const keyPrefix = "hostel:session:"

// Sessions keeps login sessions in Redis so they survive restarts and can be
// shared between API replicas.
type Sessions struct{ c *redis.Client }

func New(addr, pass string, db int) *Sessions {
	return &Sessions{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Sessions) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Sessions) Close() error { return r.c.Close() }

func (r *Sessions) Put(ctx context.Context, s domain.Session, ttl time.Duration) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	observability.ObserveSession("redis", "put")
	return r.c.Set(ctx, keyPrefix+s.ID, b, ttl).Err()
}

func (r *Sessions) Get(ctx context.Context, id string) (domain.Session, bool, error) {
	v, err := r.c.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveSession("redis", "miss")
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	observability.ObserveSession("redis", "hit")
	var s domain.Session
	if err := json.Unmarshal(v, &s); err != nil {
		return domain.Session{}, false, err
	}
	return s, true, nil
}

func (r *Sessions) Del(ctx context.Context, id string) error {
	observability.ObserveSession("redis", "del")
	return r.c.Del(ctx, keyPrefix+id).Err()
}

var _ domain.SessionStore = (*Sessions)(nil)
