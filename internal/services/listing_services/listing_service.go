package listing_services

import (
    "context"

    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/repository/listing"
)

// ListingService serves public reads. Drafts are never returned.
type ListingService struct {
    collections listing.Collections
}

func NewListingService(collections listing.Collections) *ListingService {
    return &ListingService{collections: collections}
}

func (s *ListingService) ListPublished(ctx context.Context, category domain.Category) ([]domain.Listing, error) {
    coll, err := s.collections.For(category)
    if err != nil {
        return nil, newValidationError("list", "category", "Unknown listing category")
    }
    return coll.FilterPublished(ctx), nil
}

func (s *ListingService) GetPublished(ctx context.Context, category domain.Category, id string) (*domain.Listing, error) {
    coll, err := s.collections.For(category)
    if err != nil {
        return nil, newValidationError("get", "category", "Unknown listing category")
    }
    l := coll.FindPublished(ctx, id)
    if l == nil {
        return nil, newNotFoundError("get", id)
    }
    return l, nil
}
