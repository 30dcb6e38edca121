package listing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iyunix/campus-market/internal/domain"
)

func TestFileRepositoryLoadMissingFileIsEmpty(t *testing.T) {
	repo := NewFileRepository(t.TempDir(), domain.CategorySell, nopLogger{})

	got := repo.Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", got)
	}
}

func TestFileRepositoryLoadSwallowsCorruption(t *testing.T) {
	tests := map[string]string{
		"empty":      "",
		"whitespace": "  \n",
		"garbage":    "{not json",
		"null":       "null",
		"object":     `{"id":"x"}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			repo := NewFileRepository(dir, domain.CategoryLease, nopLogger{})
			if err := os.WriteFile(repo.Path(), []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := repo.Load(context.Background()); len(got) != 0 {
				t.Fatalf("expected empty collection, got %+v", got)
			}
		})
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(t.TempDir(), domain.CategorySell, nopLogger{})
	want := sampleListings()

	if err := repo.Replace(ctx, want); err != nil {
		t.Fatalf("replace: %v", err)
	}
	first := repo.Load(ctx)
	assertSameListings(t, first, want)

	// replace(load()) is observationally a no-op
	if err := repo.Replace(ctx, first); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	assertSameListings(t, repo.Load(ctx), want)
}

func TestFileRepositoryWritesHumanReadableJSON(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(t.TempDir(), domain.CategorySell, nopLogger{})
	if err := repo.Replace(ctx, sampleListings()[:1]); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	for _, want := range []string{"\n  {", `"itemName": "Dental drill"`, `"isPublished": true`, `"otpVerified": true`} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in collection file:\n%s", want, text)
		}
	}
	if filepath.Base(repo.Path()) != "listingsforsale.json" {
		t.Fatalf("unexpected file name %s", repo.Path())
	}
}

func TestFileRepositoryReadsOriginalFormat(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir, domain.CategoryLease, nopLogger{})
	legacy := `[
  {
    "id": "0f8c",
    "sellerName": "",
    "email": "x@bue.edu.eg",
    "contactNumber": "",
    "whatsappNumber": "",
    "itemName": "Microscope",
    "itemDescription": "",
    "price": 120.5,
    "pricePeriod": "month",
    "images": [],
    "isPublished": false,
    "otpVerified": false
  }
]`
	if err := os.WriteFile(repo.Path(), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	got := repo.Load(context.Background())
	if len(got) != 1 || got[0].ItemName != "Microscope" || got[0].Price != 120.5 || got[0].PricePeriod != "month" {
		t.Fatalf("unexpected legacy decode: %+v", got)
	}
}

func TestFileRepositoryReplaceLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRepository(dir, domain.CategorySell, nopLogger{})

	for i := 0; i < 3; i++ {
		if err := repo.Replace(ctx, sampleListings()); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only the collection file, got %v", names)
	}
}

func TestFileRepositoryReplaceFailureKeepsPreviousCollection(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRepository(dir, domain.CategorySell, nopLogger{})
	if err := repo.Replace(ctx, sampleListings()); err != nil {
		t.Fatal(err)
	}

	// A directory in place of the target makes the rename fail.
	blocked := NewFileRepository(filepath.Join(dir, "blocked"), domain.CategorySell, nopLogger{})
	if err := os.MkdirAll(blocked.Path(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := blocked.Replace(ctx, sampleListings()); err == nil {
		t.Fatal("expected replace onto a directory to fail")
	}

	assertSameListings(t, repo.Load(ctx), sampleListings())
}
