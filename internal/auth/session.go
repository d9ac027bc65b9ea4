package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore tracks issued tokens so they can be revoked before they expire.
type SessionStore interface {
	Save(ctx context.Context, claims *Claims) error
	Exists(ctx context.Context, claims *Claims) (bool, error)
	Revoke(ctx context.Context, claims *Claims) error
}

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(claims *Claims) string {
	return fmt.Sprintf("session:%d:%s", claims.UserID, claims.ID)
}

// Save stores the session until the token itself expires.
func (s *RedisSessionStore) Save(ctx context.Context, claims *Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, sessionKey(claims), "active", ttl).Err()
}

func (s *RedisSessionStore) Exists(ctx context.Context, claims *Claims) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKey(claims)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, claims *Claims) error {
	return s.rdb.Del(ctx, sessionKey(claims)).Err()
}

// NopSessionStore accepts every validly signed token. Used when no redis is configured.
type NopSessionStore struct{}

func (NopSessionStore) Save(context.Context, *Claims) error           { return nil }
func (NopSessionStore) Exists(context.Context, *Claims) (bool, error) { return true, nil }
func (NopSessionStore) Revoke(context.Context, *Claims) error         { return nil }
