// File: internal/services/listing_services/verification_service.go
package listing_services

import (
    "context"
    "errors"

    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/repository/listing"
    "github.com/iyunix/campus-market/internal/services"
    "github.com/iyunix/campus-market/internal/services/otp"
)

// VerificationService publishes a draft when the submitter proves the OTP.
type VerificationService struct {
    collections listing.Collections
    challenges  *otp.Store
    logger      Logger
}

// NewVerificationService creates a new verification service
func NewVerificationService(collections listing.Collections, challenges *otp.Store, logger Logger) *VerificationService {
    return &VerificationService{
        collections: collections,
        challenges:  challenges,
        logger:      logger,
    }
}

// Verify publishes listing id if (email, code) matches the pending challenge
// for that listing and category. The challenge is consumed only after the
// published collection has been written.
func (s *VerificationService) Verify(ctx context.Context, category domain.Category, id, email, code string) (*domain.Listing, error) {
    const op = "verify"

    coll, err := s.collections.For(category)
    if err != nil {
        return nil, newValidationError(op, "category", "Unknown listing category")
    }

    var published domain.Listing
    err = s.challenges.Consume(ctx, email, func(challenge domain.Challenge) error {
        if !challenge.Matches(category, id, code) {
            return newMismatchError(op)
        }
        return coll.Update(ctx, func(listings []domain.Listing) ([]domain.Listing, error) {
            target := domain.FindByID(listings, id)
            if target == nil {
                return nil, newNotFoundError(op, id)
            }
            target.Publish()
            published = *target
            return listings, nil
        })
    })

    switch {
    case err == nil:
    case errors.Is(err, otp.ErrNoChallenge):
        s.logger.Warn("verification without pending challenge", "category", category, "listing_id", id, "email", services.MaskEmail(email))
        return nil, newMismatchError(op)
    case errors.Is(err, otp.ErrChallengeNotRemoved):
        // Published already; a stale challenge only allows an idempotent re-publish.
        s.logger.Error("listing published but challenge not removed", "error", err, "category", category, "listing_id", id)
    case TypeOf(err) == ErrTypeChallengeMismatch:
        s.logger.Warn("verification code mismatch", "category", category, "listing_id", id, "email", services.MaskEmail(email))
        return nil, err
    case TypeOf(err) == ErrTypeNotFound:
        s.logger.Warn("verified listing missing from collection", "category", category, "listing_id", id)
        return nil, err
    default:
        s.logger.Error("failed to publish listing", "error", err, "category", category, "listing_id", id)
        return nil, newPersistenceError(op, err)
    }

    s.logger.Info("listing published", "category", category, "listing_id", id, "email", services.MaskEmail(email))
    return &published, nil
}
