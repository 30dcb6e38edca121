package listing_services

import (
    "context"
    "fmt"
    "sync"
    "testing"
    "time"

    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/dtos"
    "github.com/iyunix/campus-market/internal/repository/listing"
    "github.com/iyunix/campus-market/internal/repository/verification"
    "github.com/iyunix/campus-market/internal/services"
    "github.com/iyunix/campus-market/internal/services/otp"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type recordingNotifier struct {
    mu         sync.Mutex
    notices    []services.VerificationCodeNotice
    contacts   []domain.Listing
    contactErr error
}

func (n *recordingNotifier) SendVerificationCodeAsync(notice services.VerificationCodeNotice) {
    n.mu.Lock()
    defer n.mu.Unlock()
    n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) NotifyContactViewed(_ context.Context, l domain.Listing) error {
    n.mu.Lock()
    defer n.mu.Unlock()
    if n.contactErr != nil {
        return n.contactErr
    }
    n.contacts = append(n.contacts, l)
    return nil
}

func (n *recordingNotifier) lastNotice(t *testing.T) services.VerificationCodeNotice {
    t.Helper()
    n.mu.Lock()
    defer n.mu.Unlock()
    if len(n.notices) == 0 {
        t.Fatal("no verification notice was dispatched")
    }
    return n.notices[len(n.notices)-1]
}

// failingRepository wraps a Repository and fails Replace while fail is set.
type failingRepository struct {
    listing.Repository
    mu   sync.Mutex
    fail error
}

func (f *failingRepository) setFail(err error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.fail = err
}

func (f *failingRepository) Replace(ctx context.Context, listings []domain.Listing) error {
    f.mu.Lock()
    err := f.fail
    f.mu.Unlock()
    if err != nil {
        return err
    }
    return f.Repository.Replace(ctx, listings)
}

type testEnv struct {
    collections listing.Collections
    sellRepo    *failingRepository
    challenges  *verification.MemoryChallengeRepository
    store       *otp.Store
    notifier    *recordingNotifier
    submission  *SubmissionService
    verifier    *VerificationService
    contacts    *ContactService
    reads       *ListingService
}

func newTestEnv(t *testing.T) *testEnv {
    t.Helper()
    dir := t.TempDir()

    sellRepo := &failingRepository{Repository: listing.NewFileRepository(dir, domain.CategorySell, nopLogger{})}
    collections := listing.Collections{
        domain.CategorySell:  listing.NewCollection(domain.CategorySell, sellRepo),
        domain.CategoryLease: listing.NewCollection(domain.CategoryLease, listing.NewFileRepository(dir, domain.CategoryLease, nopLogger{})),
    }
    challenges := verification.NewMemoryChallengeRepository()
    store := otp.NewStore(challenges)
    notifier := &recordingNotifier{}

    submission := NewSubmissionService(collections, store, notifier, "@bue.edu.eg", "http://localhost:3000", nopLogger{})
    var seq int
    var seqMu sync.Mutex
    submission.newID = func() string {
        seqMu.Lock()
        defer seqMu.Unlock()
        seq++
        return fmt.Sprintf("listing-%d", seq)
    }
    submission.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }

    return &testEnv{
        collections: collections,
        sellRepo:    sellRepo,
        challenges:  challenges,
        store:       store,
        notifier:    notifier,
        submission:  submission,
        verifier:    NewVerificationService(collections, store, nopLogger{}),
        contacts:    NewContactService(collections, notifier, nopLogger{}),
        reads:       NewListingService(collections),
    }
}

func drillRequest(email string) dtos.ListingSubmissionRequestDTO {
    return dtos.ListingSubmissionRequestDTO{ItemName: "Drill", Price: "50", Email: email}
}

// pendingCode returns the code stored for email, failing if there is none.
func (e *testEnv) pendingCode(t *testing.T, email string) domain.Challenge {
    t.Helper()
    ch, err := e.store.Get(context.Background(), email)
    if err != nil {
        t.Fatalf("get challenge: %v", err)
    }
    if ch == nil {
        t.Fatalf("expected a pending challenge for %s", email)
    }
    return *ch
}

func wrongCode(code string) string {
    if code == "000000" {
        return "111111"
    }
    return "000000"
}
