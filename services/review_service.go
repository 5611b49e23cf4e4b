package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
	"marketplace-backend/repository"
)

// PurchaseChecker answers whether a buyer has ever purchased from a
// developer. It is the review-eligibility gate.
type PurchaseChecker interface {
	HasPurchasedFromDeveloper(ctx context.Context, userID uuid.UUID, developerID string) (bool, error)
}

// ReviewPage is one page of a developer's reviews with the running summary.
type ReviewPage struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	Meta          PageMeta        `json:"meta"`
}

type ReviewService struct {
	reviews   repository.ReviewRepository
	purchases PurchaseChecker
	notifier  Notifier
}

func NewReviewService(reviews repository.ReviewRepository, purchases PurchaseChecker, notifier Notifier) *ReviewService {
	return &ReviewService{reviews: reviews, purchases: purchases, notifier: notifier}
}

// List returns a developer's reviews newest-first with pagination and the
// average rating across all of them.
func (s *ReviewService) List(ctx context.Context, developerID string, page, perPage int) (*ReviewPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 5
	}

	reviews, total, err := s.reviews.FindByDeveloper(ctx, developerID, page, perPage)
	if err != nil {
		return nil, apperrors.ErrRemoteRead.WithMessage("Could not load reviews").Wrap(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	avg, _, err := s.reviews.RatingSummary(ctx, developerID)
	if err != nil {
		return nil, apperrors.ErrRemoteRead.WithMessage("Could not load reviews").Wrap(err)
	}

	return &ReviewPage{
		Reviews:       reviews,
		AverageRating: avg,
		Meta:          NewPageMeta(page, perPage, total),
	}, nil
}

// Submit records a review. The reviewer must be signed in and must have a
// purchase from the developer; validation runs before any write.
func (s *ReviewService) Submit(ctx context.Context, identity *models.Identity, developerID string, rating int, comment string) (*models.Review, error) {
	if identity == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrValidation.WithMessage("Rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, apperrors.ErrValidation.WithMessage("A comment is required")
	}

	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidInput.Wrap(err)
	}

	eligible, err := s.purchases.HasPurchasedFromDeveloper(ctx, userID, developerID)
	if err != nil {
		return nil, apperrors.ErrRemoteRead.Wrap(err)
	}
	if !eligible {
		return nil, apperrors.ErrNotEligibleToReview
	}

	review := &models.Review{
		ID:           uuid.NewString(),
		DeveloperID:  developerID,
		ReviewerID:   identity.UserID,
		ReviewerName: identity.FullName,
		Rating:       rating,
		Comment:      comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		s.notifier.Show(ctx, identity.UserID, "Could not submit your review.", models.NotificationError)
		return nil, apperrors.ErrRemoteWrite.WithMessage("Could not submit your review").Wrap(err)
	}

	s.notifier.Show(ctx, identity.UserID, "Thanks for your review!", models.NotificationSuccess)
	return review, nil
}
