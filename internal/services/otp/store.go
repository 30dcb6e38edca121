// File: internal/services/otp/store.go
package otp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iyunix/campus-market/internal/domain"
	"github.com/iyunix/campus-market/internal/repository/verification"
)

var (
	// ErrNoChallenge is returned by Consume when the e-mail has no pending challenge.
	ErrNoChallenge = errors.New("no pending challenge")
	// ErrChallengeNotRemoved means fn succeeded but the challenge could not be deleted.
	ErrChallengeNotRemoved = errors.New("consumed challenge not removed")
)

// Store is the only way to reach pending challenges. A single mutex orders
// every operation, so a submission and a verification for the same e-mail
// never interleave, whatever the category.
type Store struct {
	mu   sync.Mutex
	repo verification.ChallengeRepository
}

func NewStore(repo verification.ChallengeRepository) *Store {
	return &Store{repo: repo}
}

// Put replaces any challenge already pending for the e-mail.
func (s *Store) Put(ctx context.Context, email string, challenge domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Put(ctx, email, challenge)
}

func (s *Store) Get(ctx context.Context, email string) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Get(ctx, email)
}

func (s *Store) Remove(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Remove(ctx, email)
}

// Consume hands the pending challenge to fn while holding the lock and
// removes it only when fn returns nil. A failing fn leaves the challenge in place.
func (s *Store) Consume(ctx context.Context, email string, fn func(domain.Challenge) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, err := s.repo.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up challenge: %w", err)
	}
	if challenge == nil {
		return ErrNoChallenge
	}
	if err := fn(*challenge); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, email); err != nil {
		return fmt.Errorf("%w: %v", ErrChallengeNotRemoved, err)
	}
	return nil
}
