// File: internal/domain/category.go
package domain

import (
	"fmt"
	"strings"
)

// Category partitions listings. Each category owns its own collection and
// image area, while challenges are shared across categories.
type Category string

const (
	CategorySell  Category = "sell"
	CategoryLease Category = "lease"
)

// Categories lists every category in a stable order.
var Categories = []Category{CategorySell, CategoryLease}

// ParseCategory accepts the lowercase tag used in URLs and request bodies.
func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategorySell:
		return CategorySell, nil
	case CategoryLease:
		return CategoryLease, nil
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

func (c Category) String() string {
	return string(c)
}

// Title is the capitalised name used in page headings and mail subjects.
func (c Category) Title() string {
	switch c {
	case CategorySell:
		return "Sell"
	case CategoryLease:
		return "Lease"
	}
	return string(c)
}

// FormPath is where the submission form for the category is posted.
func (c Category) FormPath() string {
	return "/preowned/" + string(c)
}

// BrowsePath is the public page that shows published listings of the category.
func (c Category) BrowsePath() string {
	if c == CategoryLease {
		return "/preowned/rent"
	}
	return "/preowned/buy"
}

// ImageArea is the category's sub-area inside the image store.
func (c Category) ImageArea() string {
	if c == CategoryLease {
		return "lease/pending"
	}
	return "pending"
}

// CollectionFile is the file name of the category's collection on disk.
func (c Category) CollectionFile() string {
	if c == CategoryLease {
		return "listingsforlease.json"
	}
	return "listingsforsale.json"
}
