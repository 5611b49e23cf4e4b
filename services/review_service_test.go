package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
)

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) FindByDeveloper(ctx context.Context, developerID string, page, perPage int) ([]models.Review, int64, error) {
	args := m.Called(ctx, developerID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}
func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepository) RatingSummary(ctx context.Context, developerID string) (float64, int64, error) {
	args := m.Called(ctx, developerID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type MockPurchaseChecker struct{ mock.Mock }

func (m *MockPurchaseChecker) HasPurchasedFromDeveloper(ctx context.Context, userID uuid.UUID, developerID string) (bool, error) {
	args := m.Called(ctx, userID, developerID)
	return args.Bool(0), args.Error(1)
}

func newReviewFixture() (*ReviewService, *MockReviewRepository, *MockPurchaseChecker, *MockNotifier) {
	reviews := new(MockReviewRepository)
	purchases := new(MockPurchaseChecker)
	notifier := new(MockNotifier)
	return NewReviewService(reviews, purchases, notifier), reviews, purchases, notifier
}

func TestSubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - eligible buyer", func(t *testing.T) {
		svc, reviews, purchases, notifier := newReviewFixture()
		identity := buyerIdentity()
		userID := uuid.MustParse(identity.UserID)

		purchases.On("HasPurchasedFromDeveloper", ctx, userID, "dev-1").Return(true, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil).Once()
		notifier.On("Show", ctx, identity.UserID, "Thanks for your review!", models.NotificationSuccess).Once()

		review, err := svc.Submit(ctx, identity, "dev-1", 5, "Great work, fast turnaround.")

		assert.NoError(t, err)
		assert.Equal(t, "dev-1", review.DeveloperID)
		assert.Equal(t, identity.FullName, review.ReviewerName)
		assert.Equal(t, 5, review.Rating)
		reviews.AssertExpectations(t)
	})

	t.Run("Anonymous reviewer is rejected", func(t *testing.T) {
		svc, reviews, _, _ := newReviewFixture()

		_, err := svc.Submit(ctx, nil, "dev-1", 5, "nice")

		assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Rating out of range is rejected before the eligibility check", func(t *testing.T) {
		svc, _, purchases, _ := newReviewFixture()

		_, err := svc.Submit(ctx, buyerIdentity(), "dev-1", 6, "nice")

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Rating must be between 1 and 5", appErr.Message)
		purchases.AssertNotCalled(t, "HasPurchasedFromDeveloper", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Blank comment is rejected", func(t *testing.T) {
		svc, _, _, _ := newReviewFixture()

		_, err := svc.Submit(ctx, buyerIdentity(), "dev-1", 4, "   ")

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "A comment is required", appErr.Message)
	})

	t.Run("No purchase from this developer means not eligible", func(t *testing.T) {
		svc, reviews, purchases, _ := newReviewFixture()
		identity := buyerIdentity()
		userID := uuid.MustParse(identity.UserID)

		purchases.On("HasPurchasedFromDeveloper", ctx, userID, "dev-1").Return(false, nil).Once()

		_, err := svc.Submit(ctx, identity, "dev-1", 4, "nice work")

		assert.ErrorIs(t, err, apperrors.ErrNotEligibleToReview)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Write failure notifies with an error toast", func(t *testing.T) {
		svc, reviews, purchases, notifier := newReviewFixture()
		identity := buyerIdentity()
		userID := uuid.MustParse(identity.UserID)

		purchases.On("HasPurchasedFromDeveloper", ctx, userID, "dev-1").Return(true, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(errors.New("write timeout")).Once()
		notifier.On("Show", ctx, identity.UserID, "Could not submit your review.", models.NotificationError).Once()

		_, err := svc.Submit(ctx, identity, "dev-1", 4, "nice work")

		assert.Error(t, err)
		notifier.AssertExpectations(t)
	})
}

func TestListReviews(t *testing.T) {
	ctx := context.Background()

	t.Run("Success with summary", func(t *testing.T) {
		svc, reviews, _, _ := newReviewFixture()

		stored := []models.Review{{ID: "r1", DeveloperID: "dev-1", Rating: 5}}
		reviews.On("FindByDeveloper", ctx, "dev-1", 1, 5).Return(stored, int64(12), nil).Once()
		reviews.On("RatingSummary", ctx, "dev-1").Return(4.5, int64(12), nil).Once()

		page, err := svc.List(ctx, "dev-1", 0, 0)

		assert.NoError(t, err)
		assert.Len(t, page.Reviews, 1)
		assert.Equal(t, 4.5, page.AverageRating)
		assert.Equal(t, 1, page.Meta.Page)
		assert.Equal(t, int64(12), page.Meta.Total)
	})

	t.Run("Store failure surfaces as a read error", func(t *testing.T) {
		svc, reviews, _, _ := newReviewFixture()

		reviews.On("FindByDeveloper", ctx, "dev-1", 1, 5).Return(nil, int64(0), errors.New("no reachable servers")).Once()

		_, err := svc.List(ctx, "dev-1", 1, 5)

		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Could not load reviews", appErr.Message)
	})
}
