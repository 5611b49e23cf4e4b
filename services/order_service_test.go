package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}
func (m *MockOrderRepository) DistinctServiceIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockOrderRepository) HasPurchasedFromDeveloper(ctx context.Context, userID uuid.UUID, developerID string) (bool, error) {
	args := m.Called(ctx, userID, developerID)
	return args.Bool(0), args.Error(1)
}

type MockServiceReader struct{ mock.Mock }

func (m *MockServiceReader) FindByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func newOrderFixture() (*OrderService, *MockOrderRepository, *MockServiceReader, *MockNotifier) {
	orders := new(MockOrderRepository)
	catalog := new(MockServiceReader)
	notifier := new(MockNotifier)
	return NewOrderService(orders, catalog, notifier, zap.NewNop()), orders, catalog, notifier
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - repeat purchases list the service once", func(t *testing.T) {
		svc, orders, catalog, _ := newOrderFixture()
		identity := buyerIdentity()
		userID := uuid.MustParse(identity.UserID)

		stored := []models.Order{{ID: uuid.New(), UserID: userID, Amount: 49.99}, {ID: uuid.New(), UserID: userID, Amount: 49.99}}
		orders.On("FindByUserID", ctx, userID, 1, 10).Return(stored, int64(2), nil).Once()
		orders.On("DistinctServiceIDs", ctx, userID).Return([]string{"svc-1"}, nil).Once()
		catalog.On("FindByIDs", ctx, []string{"svc-1"}).
			Return([]models.Service{{ID: "svc-1", Title: "Landing Page Kit"}}, nil).Once()

		history, err := svc.History(ctx, identity, 0, 0)

		assert.NoError(t, err)
		assert.Len(t, history.Orders, 2)
		assert.Len(t, history.Services, 1)
		assert.Equal(t, int64(2), history.Meta.Total)
	})

	t.Run("Anonymous caller is rejected", func(t *testing.T) {
		svc, orders, _, _ := newOrderFixture()

		_, err := svc.History(ctx, nil, 1, 10)

		assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
		orders.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Order read failure notifies and errors", func(t *testing.T) {
		svc, orders, _, notifier := newOrderFixture()
		identity := buyerIdentity()
		userID := uuid.MustParse(identity.UserID)

		orders.On("FindByUserID", ctx, userID, 1, 10).
			Return(nil, int64(0), errors.New("connection refused")).Once()
		notifier.On("Show", ctx, identity.UserID, "Could not fetch purchase history.", models.NotificationError).Once()

		_, err := svc.History(ctx, identity, 1, 10)

		assert.Error(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("Hydration failure degrades to an empty service list", func(t *testing.T) {
		svc, orders, catalog, _ := newOrderFixture()
		identity := buyerIdentity()
		userID := uuid.MustParse(identity.UserID)

		orders.On("FindByUserID", ctx, userID, 1, 10).
			Return([]models.Order{{ID: uuid.New(), UserID: userID}}, int64(1), nil).Once()
		orders.On("DistinctServiceIDs", ctx, userID).Return([]string{"svc-1"}, nil).Once()
		catalog.On("FindByIDs", ctx, []string{"svc-1"}).
			Return(nil, errors.New("no reachable servers")).Once()

		history, err := svc.History(ctx, identity, 1, 10)

		assert.NoError(t, err)
		assert.Empty(t, history.Services)
		assert.Len(t, history.Orders, 1)
	})
}
