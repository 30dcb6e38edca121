// File: internal/repository/verification/redis_challenge_repository.go
package verification

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"

    "github.com/redis/go-redis/v9"

    "github.com/iyunix/campus-market/internal/domain"
)

const challengeKeyPrefix = "otp:challenge:"

// RedisChallengeRepository stores challenges in Redis so they survive process restarts.
// Keys carry no TTL: challenges live until consumed or overwritten.
type RedisChallengeRepository struct {
    client *redis.Client
}

// NewRedisChallengeRepository wraps an existing client
func NewRedisChallengeRepository(client *redis.Client) *RedisChallengeRepository {
    return &RedisChallengeRepository{client: client}
}

// NewRedisClient connects to addr and pings it once.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
    client := redis.NewClient(&redis.Options{
        Addr:     addr,
        Password: password,
        DB:       db,
    })
    if err := client.Ping(ctx).Err(); err != nil {
        client.Close()
        return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
    }
    return client, nil
}

func challengeKey(email string) string {
    return challengeKeyPrefix + email
}

func (r *RedisChallengeRepository) Put(ctx context.Context, email string, challenge domain.Challenge) error {
    payload, err := json.Marshal(challenge)
    if err != nil {
        return fmt.Errorf("failed to encode challenge: %w", err)
    }
    if err := r.client.Set(ctx, challengeKey(email), payload, 0).Err(); err != nil {
        return fmt.Errorf("failed to store challenge: %w", err)
    }
    return nil
}

func (r *RedisChallengeRepository) Get(ctx context.Context, email string) (*domain.Challenge, error) {
    payload, err := r.client.Get(ctx, challengeKey(email)).Bytes()
    if err != nil {
        if errors.Is(err, redis.Nil) {
            return nil, nil
        }
        return nil, fmt.Errorf("failed to read challenge: %w", err)
    }

    var challenge domain.Challenge
    if err := json.Unmarshal(payload, &challenge); err != nil {
        return nil, fmt.Errorf("failed to decode challenge: %w", err)
    }
    return &challenge, nil
}

func (r *RedisChallengeRepository) Remove(ctx context.Context, email string) error {
    if err := r.client.Del(ctx, challengeKey(email)).Err(); err != nil {
        return fmt.Errorf("failed to remove challenge: %w", err)
    }
    return nil
}
