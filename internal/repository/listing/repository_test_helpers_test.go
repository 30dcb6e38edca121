package listing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/iyunix/campus-market/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{
			ID:              "b7c1",
			Category:        domain.CategorySell,
			SellerName:      "Mona",
			Email:           "mona@bue.edu.eg",
			ContactNumber:   "0100",
			WhatsappNumber:  "0101",
			ItemName:        "Dental drill",
			ItemDescription: "Barely used",
			Price:           50,
			Images:          []string{"/uploads/pending/1-a.jpg", "/uploads/pending/2-b.png"},
			IsPublished:     true,
			OTPVerified:     true,
			CreatedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "a001",
			Category:    domain.CategorySell,
			Email:       "omar@bue.edu.eg",
			ItemName:    "Lab coat",
			Price:       0,
			PricePeriod: "",
			Images:      []string{},
			CreatedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		},
	}
}

func assertSameListings(t *testing.T, got, want []domain.Listing) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d listings, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Email != w.Email || g.ItemName != w.ItemName || g.Price != w.Price ||
			g.SellerName != w.SellerName || g.ContactNumber != w.ContactNumber || g.WhatsappNumber != w.WhatsappNumber ||
			g.ItemDescription != w.ItemDescription || g.PricePeriod != w.PricePeriod ||
			g.IsPublished != w.IsPublished || g.OTPVerified != w.OTPVerified || !g.CreatedAt.Equal(w.CreatedAt) {
			t.Fatalf("listing %d differs:\n got  %+v\n want %+v", i, g, w)
		}
		if len(g.Images) != len(w.Images) {
			t.Fatalf("listing %d images differ: %v vs %v", i, g.Images, w.Images)
		}
		for j := range w.Images {
			if g.Images[j] != w.Images[j] {
				t.Fatalf("listing %d image %d differs: %q vs %q", i, j, g.Images[j], w.Images[j])
			}
		}
	}
}

// memoryRepository is an in-memory Repository that can be told to fail writes.
type memoryRepository struct {
	listings []domain.Listing
	failErr  error
	replaces int
}

func (m *memoryRepository) Load(context.Context) []domain.Listing {
	out := make([]domain.Listing, len(m.listings))
	copy(out, m.listings)
	return out
}

func (m *memoryRepository) Replace(_ context.Context, listings []domain.Listing) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.replaces++
	m.listings = append([]domain.Listing(nil), listings...)
	return nil
}

var errDiskFull = errors.New("disk full")

func newTestSQLiteRepo(t *testing.T, category domain.Category) *GormRepository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "market.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewGormRepository(db, category, nopLogger{})
}
