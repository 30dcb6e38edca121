// File: internal/services/listing_services/contact_service.go
package listing_services

import (
    "context"

    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/repository/listing"
)

// ContactService reports contact reveals to the marketplace admin.
type ContactService struct {
    collections listing.Collections
    notifier    ContactNotifier
    logger      Logger
}

func NewContactService(collections listing.Collections, notifier ContactNotifier, logger Logger) *ContactService {
    return &ContactService{collections: collections, notifier: notifier, logger: logger}
}

// NotifyContactViewed looks the listing up in any state and sends the notice synchronously.
func (s *ContactService) NotifyContactViewed(ctx context.Context, category domain.Category, id string) error {
    const op = "notify_contact_viewed"

    coll, err := s.collections.For(category)
    if err != nil {
        return newValidationError(op, "type", "Unknown listing category")
    }
    l := coll.FindByID(ctx, id)
    if l == nil {
        return newNotFoundError(op, id)
    }
    if err := s.notifier.NotifyContactViewed(ctx, *l); err != nil {
        s.logger.Error("contact view notification failed", "error", err, "category", category, "listing_id", id)
        return newDispatchError(op, err)
    }
    return nil
}
