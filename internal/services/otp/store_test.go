package otp

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/iyunix/campus-market/internal/domain"
	"github.com/iyunix/campus-market/internal/repository/verification"
)

func TestStorePutOverwritesAcrossCategories(t *testing.T) {
	ctx := context.Background()
	s := NewStore(verification.NewMemoryChallengeRepository())
	email := "a@bue.edu.eg"

	if err := s.Put(ctx, email, domain.Challenge{Email: email, Code: "111111", ListingID: "s1", Category: domain.CategorySell}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, email, domain.Challenge{Email: email, Code: "222222", ListingID: "l1", Category: domain.CategoryLease}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	if got.ListingID != "l1" || got.Category != domain.CategoryLease {
		t.Fatalf("expected lease challenge to win, got %+v", got)
	}
}

func TestStoreConsumeRemovesOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	repo := verification.NewMemoryChallengeRepository()
	s := NewStore(repo)
	email := "a@bue.edu.eg"
	if err := s.Put(ctx, email, domain.Challenge{Email: email, Code: "123456", ListingID: "x", Category: domain.CategorySell}); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("write failed")
	if err := s.Consume(ctx, email, func(domain.Challenge) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if repo.Len() != 1 {
		t.Fatal("challenge must survive a failed consume")
	}

	var seen domain.Challenge
	if err := s.Consume(ctx, email, func(c domain.Challenge) error { seen = c; return nil }); err != nil {
		t.Fatal(err)
	}
	if seen.Code != "123456" {
		t.Fatalf("fn saw wrong challenge: %+v", seen)
	}
	if repo.Len() != 0 {
		t.Fatal("challenge must be removed after a successful consume")
	}

	if err := s.Consume(ctx, email, func(domain.Challenge) error { return nil }); !errors.Is(err, ErrNoChallenge) {
		t.Fatalf("expected ErrNoChallenge on second consume, got %v", err)
	}
}

func TestStoreConsumeIsExclusive(t *testing.T) {
	ctx := context.Background()
	s := NewStore(verification.NewMemoryChallengeRepository())
	email := "a@bue.edu.eg"
	if err := s.Put(ctx, email, domain.Challenge{Email: email, Code: "123456", ListingID: "x", Category: domain.CategorySell}); err != nil {
		t.Fatal(err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Consume(ctx, email, func(domain.Challenge) error { return nil })
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly one consumer to win, got %d", successes)
	}
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 2000; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil || n < codeMin || n > codeMax {
			t.Fatalf("code %q out of range", code)
		}
	}
}
