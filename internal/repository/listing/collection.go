// File: internal/repository/listing/collection.go
package listing

import (
	"context"
	"fmt"
	"sync"

	"github.com/iyunix/campus-market/internal/domain"
)

// Collection is the single writer path for one category.
// Reads go straight to the repository; every mutation holds mu from load to replace.
type Collection struct {
	category domain.Category
	repo     Repository
	mu       sync.Mutex
}

func NewCollection(category domain.Category, repo Repository) *Collection {
	return &Collection{category: category, repo: repo}
}

func (c *Collection) Category() domain.Category {
	return c.category
}

// Load returns the full collection, draft listings included.
func (c *Collection) Load(ctx context.Context) []domain.Listing {
	listings := c.repo.Load(ctx)
	// Collections written before the category field existed carry no tag.
	for i := range listings {
		if listings[i].Category == "" {
			listings[i].Category = c.category
		}
	}
	return listings
}

// FindByID returns a copy of the listing in any state, or nil.
func (c *Collection) FindByID(ctx context.Context, id string) *domain.Listing {
	found := domain.FindByID(c.Load(ctx), id)
	if found == nil {
		return nil
	}
	l := *found
	return &l
}

// FilterPublished is what the public read endpoints return.
func (c *Collection) FilterPublished(ctx context.Context) []domain.Listing {
	return domain.FilterPublished(c.Load(ctx))
}

// FindPublished returns the listing only if it is published.
func (c *Collection) FindPublished(ctx context.Context, id string) *domain.Listing {
	l := c.FindByID(ctx, id)
	if l == nil || !l.IsPublished {
		return nil
	}
	return l
}

// Update runs load → fn → replace under the category's writer lock.
// If fn fails nothing is written.
func (c *Collection) Update(ctx context.Context, fn func([]domain.Listing) ([]domain.Listing, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated, err := fn(c.Load(ctx))
	if err != nil {
		return err
	}
	return c.repo.Replace(ctx, updated)
}

// Append adds a listing at the end of the collection. Duplicate ids are refused.
func (c *Collection) Append(ctx context.Context, l domain.Listing) error {
	return c.Update(ctx, func(listings []domain.Listing) ([]domain.Listing, error) {
		if domain.FindByID(listings, l.ID) != nil {
			return nil, fmt.Errorf("listing %s already exists in %s", l.ID, c.category)
		}
		return append(listings, l), nil
	})
}

// Collections holds one Collection per category.
type Collections map[domain.Category]*Collection

// For returns the collection of category, or an error for an unknown category.
func (cs Collections) For(category domain.Category) (*Collection, error) {
	c, ok := cs[category]
	if !ok {
		return nil, fmt.Errorf("no collection for category %q", category)
	}
	return c, nil
}
