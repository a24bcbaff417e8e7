package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no code is stored for the admin, either
// because none was issued or because the TTL ran out.
var ErrOTPNotFound = errors.New("otp not found")

// OTPStore holds one-time passwords with a bounded lifetime.
type OTPStore interface {
	Put(ctx context.Context, adminID, code string, ttl time.Duration) error
	Get(ctx context.Context, adminID string) (string, error)
	Delete(ctx context.Context, adminID string) error
}

type redisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client}
}

func otpKey(adminID string) string {
	return "admin:otp:" + adminID
}

func (s *redisOTPStore) Put(ctx context.Context, adminID, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(adminID), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (s *redisOTPStore) Get(ctx context.Context, adminID string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(adminID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read otp: %w", err)
	}
	return code, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, adminID string) error {
	if err := s.client.Del(ctx, otpKey(adminID)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
