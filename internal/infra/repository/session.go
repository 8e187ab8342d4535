package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mapmemo/mapmemo/internal/domain"
)

const sessionPrefix = "session:"

// SessionRepository records issued token IDs in redis. A token is only
// accepted while its session row exists; logout deletes the row.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func (r *SessionRepository) Put(ctx context.Context, jti string, userID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, sessionPrefix+jti, userID, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, jti string) (string, error) {
	userID, err := r.rdb.Get(ctx, sessionPrefix+jti).Result()
	if err == redis.Nil {
		return "", domain.NotFoundError{Resource: "session"}
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, jti string) error {
	return r.rdb.Del(ctx, sessionPrefix+jti).Err()
}
