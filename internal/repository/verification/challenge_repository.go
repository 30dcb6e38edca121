// File: internal/repository/verification/challenge_repository.go
package verification

import (
    "context"
    "sync"

    "github.com/iyunix/campus-market/internal/domain"
)

// ChallengeRepository holds pending OTP challenges keyed by e-mail.
// Each call is atomic on its own; sequences of calls are serialized by the caller.
type ChallengeRepository interface {
    // Put overwrites any existing challenge for the e-mail.
    Put(ctx context.Context, email string, challenge domain.Challenge) error
    // Get returns nil, nil when there is no challenge for the e-mail.
    Get(ctx context.Context, email string) (*domain.Challenge, error)
    Remove(ctx context.Context, email string) error
}

// MemoryChallengeRepository keeps challenges in process memory. Nothing expires.
type MemoryChallengeRepository struct {
    mu         sync.RWMutex
    challenges map[string]domain.Challenge
}

// NewMemoryChallengeRepository creates an empty in-process challenge repository
func NewMemoryChallengeRepository() *MemoryChallengeRepository {
    return &MemoryChallengeRepository{challenges: make(map[string]domain.Challenge)}
}

func (r *MemoryChallengeRepository) Put(ctx context.Context, email string, challenge domain.Challenge) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.challenges[email] = challenge
    return nil
}

func (r *MemoryChallengeRepository) Get(ctx context.Context, email string) (*domain.Challenge, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    challenge, ok := r.challenges[email]
    if !ok {
        return nil, nil
    }
    return &challenge, nil
}

func (r *MemoryChallengeRepository) Remove(ctx context.Context, email string) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    delete(r.challenges, email)
    return nil
}

// Len reports how many challenges are pending.
func (r *MemoryChallengeRepository) Len() int {
    r.mu.RLock()
    defer r.mu.RUnlock()
    return len(r.challenges)
}
