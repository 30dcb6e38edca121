package verification

import (
    "context"
    "testing"
    "time"

    miniredis "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"

    "github.com/iyunix/campus-market/internal/domain"
)

func newRedisRepoForTest(t *testing.T) (*miniredis.Miniredis, *RedisChallengeRepository) {
    t.Helper()
    m := miniredis.RunT(t)
    client := redis.NewClient(&redis.Options{Addr: m.Addr()})
    t.Cleanup(func() { _ = client.Close() })
    return m, NewRedisChallengeRepository(client)
}

func TestChallengeRepositoryContract(t *testing.T) {
    _, redisRepo := newRedisRepoForTest(t)
    repos := map[string]ChallengeRepository{
        "memory": NewMemoryChallengeRepository(),
        "redis":  redisRepo,
    }

    for name, repo := range repos {
        t.Run(name, func(t *testing.T) {
            ctx := context.Background()
            email := "a@bue.edu.eg"

            got, err := repo.Get(ctx, email)
            if err != nil || got != nil {
                t.Fatalf("expected no challenge, got %+v err=%v", got, err)
            }

            first := domain.Challenge{Email: email, Code: "111111", ListingID: "sell-1", Category: domain.CategorySell}
            if err := repo.Put(ctx, email, first); err != nil {
                t.Fatal(err)
            }
            second := domain.Challenge{Email: email, Code: "222222", ListingID: "lease-1", Category: domain.CategoryLease}
            if err := repo.Put(ctx, email, second); err != nil {
                t.Fatal(err)
            }

            got, err = repo.Get(ctx, email)
            if err != nil {
                t.Fatal(err)
            }
            if got == nil || *got != second {
                t.Fatalf("expected overwrite with %+v, got %+v", second, got)
            }

            if err := repo.Remove(ctx, email); err != nil {
                t.Fatal(err)
            }
            if got, _ := repo.Get(ctx, email); got != nil {
                t.Fatalf("expected challenge removed, got %+v", got)
            }
            // Removing twice is not an error.
            if err := repo.Remove(ctx, email); err != nil {
                t.Fatal(err)
            }
        })
    }
}

func TestRedisChallengeRepositoryHasNoExpiry(t *testing.T) {
    m, repo := newRedisRepoForTest(t)
    ctx := context.Background()

    if err := repo.Put(ctx, "a@bue.edu.eg", domain.Challenge{Email: "a@bue.edu.eg", Code: "123456", ListingID: "x", Category: domain.CategorySell}); err != nil {
        t.Fatal(err)
    }
    if ttl := m.TTL(challengeKey("a@bue.edu.eg")); ttl != 0 {
        t.Fatalf("expected no TTL, got %v", ttl)
    }
    m.FastForward(365 * 24 * time.Hour)
    if got, _ := repo.Get(ctx, "a@bue.edu.eg"); got == nil {
        t.Fatal("challenge must not expire")
    }
}

func TestRedisChallengeRepositorySurfacesBackendErrors(t *testing.T) {
    m, repo := newRedisRepoForTest(t)
    m.Close()

    if _, err := repo.Get(context.Background(), "a@bue.edu.eg"); err == nil {
        t.Fatal("expected error with redis down")
    }
}

func TestRedisChallengeRepositoryCorruptValue(t *testing.T) {
    m, repo := newRedisRepoForTest(t)
    if err := m.Set(challengeKey("a@bue.edu.eg"), "not-json"); err != nil {
        t.Fatal(err)
    }
    if _, err := repo.Get(context.Background(), "a@bue.edu.eg"); err == nil {
        t.Fatal("expected decode error")
    }
}

func TestNewRedisClientFailsFast(t *testing.T) {
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if _, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0); err == nil {
        t.Fatal("expected ping failure")
    }
}
