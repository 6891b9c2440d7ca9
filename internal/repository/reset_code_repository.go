package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetCodeRepository keeps password recovery codes in an expiring key
// store so they survive restarts and horizontal scaling, unlike an
// in-process map.
type ResetCodeRepository struct {
	Client *redis.Client
}

func NewResetCodeRepository(client *redis.Client) *ResetCodeRepository {
	return &ResetCodeRepository{Client: client}
}

func resetKey(email string) string {
	return "reset-code:" + email
}

func (r *ResetCodeRepository) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return r.Client.SetEx(ctx, resetKey(email), code, ttl).Err()
}

func (r *ResetCodeRepository) Get(ctx context.Context, email string) (string, error) {
	code, err := r.Client.Get(ctx, resetKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (r *ResetCodeRepository) Delete(ctx context.Context, email string) error {
	return r.Client.Del(ctx, resetKey(email)).Err()
}
