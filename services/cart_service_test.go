package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marketplace-backend/models"
)

func landingPageKitService() models.Service {
	return models.Service{
		ID:          "svc-1",
		Title:       "Landing Page Kit",
		Price:       49.99,
		DeveloperID: "dev-1",
	}
}

func TestCartServiceAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("captures price and title at add time", func(t *testing.T) {
		store := new(MockCartStore)
		notifier := new(MockNotifier)
		svc := NewCartService(store, notifier)

		store.On("Load", ctx, "user-1").Return(models.EmptyCart("user-1")).Once()
		store.On("Save", ctx, mock.AnythingOfType("models.Cart")).Once()
		notifier.On("Show", ctx, "user-1", "'Landing Page Kit' added to cart!", models.NotificationSuccess).Once()

		cart := svc.Add(ctx, "user-1", landingPageKitService())

		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 49.99, cart.Items[0].UnitPrice)
		assert.Equal(t, "dev-1", cart.Items[0].DeveloperID)
		store.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("second add merges rather than duplicating", func(t *testing.T) {
		store := new(MockCartStore)
		notifier := new(MockNotifier)
		svc := NewCartService(store, notifier)

		existing := models.EmptyCart("user-1").AddItem(models.CartItem{
			ServiceID: "svc-1", Title: "Landing Page Kit", UnitPrice: 49.99, DeveloperID: "dev-1",
		})
		store.On("Load", ctx, "user-1").Return(existing).Once()
		store.On("Save", ctx, mock.AnythingOfType("models.Cart")).Once()
		notifier.On("Show", ctx, "user-1", mock.Anything, models.NotificationSuccess).Once()

		// The catalog has been repriced since the first add.
		repriced := landingPageKitService()
		repriced.Price = 89.99

		cart := svc.Add(ctx, "user-1", repriced)

		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, 49.99, cart.Items[0].UnitPrice)
	})
}

func TestCartServiceSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("updates and notifies", func(t *testing.T) {
		store := new(MockCartStore)
		notifier := new(MockNotifier)
		svc := NewCartService(store, notifier)

		existing := models.EmptyCart("user-1").AddItem(models.CartItem{
			ServiceID: "svc-1", Title: "Landing Page Kit", UnitPrice: 49.99,
		})
		store.On("Load", ctx, "user-1").Return(existing).Once()
		store.On("Save", ctx, mock.AnythingOfType("models.Cart")).Once()
		notifier.On("Show", ctx, "user-1", "Updated quantity of 'Landing Page Kit'.", models.NotificationSuccess).Once()

		cart := svc.SetQuantity(ctx, "user-1", "svc-1", 4)

		assert.Equal(t, 4, cart.Items[0].Quantity)
		notifier.AssertExpectations(t)
	})

	t.Run("zero removes the line with a removal toast", func(t *testing.T) {
		store := new(MockCartStore)
		notifier := new(MockNotifier)
		svc := NewCartService(store, notifier)

		existing := models.EmptyCart("user-1").AddItem(models.CartItem{
			ServiceID: "svc-1", Title: "Landing Page Kit", UnitPrice: 49.99,
		})
		store.On("Load", ctx, "user-1").Return(existing).Once()
		store.On("Save", ctx, mock.AnythingOfType("models.Cart")).Once()
		notifier.On("Show", ctx, "user-1", "'Landing Page Kit' removed from cart.", models.NotificationSuccess).Once()

		cart := svc.SetQuantity(ctx, "user-1", "svc-1", 0)

		assert.True(t, cart.IsEmpty())
		notifier.AssertExpectations(t)
	})

	t.Run("absent service saves unchanged and stays quiet", func(t *testing.T) {
		store := new(MockCartStore)
		notifier := new(MockNotifier)
		svc := NewCartService(store, notifier)

		store.On("Load", ctx, "user-1").Return(models.EmptyCart("user-1")).Once()
		store.On("Save", ctx, mock.AnythingOfType("models.Cart")).Once()

		cart := svc.SetQuantity(ctx, "user-1", "svc-404", 3)

		assert.True(t, cart.IsEmpty())
		notifier.AssertNotCalled(t, "Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartServiceClear(t *testing.T) {
	ctx := context.Background()
	store := new(MockCartStore)
	notifier := new(MockNotifier)
	svc := NewCartService(store, notifier)

	existing := models.EmptyCart("user-1").AddItem(models.CartItem{ServiceID: "svc-1", Quantity: 1})
	store.On("Load", ctx, "user-1").Return(existing).Once()
	store.On("Delete", ctx, "user-1").Once()
	notifier.On("Show", ctx, "user-1", "Cart cleared.", models.NotificationSuccess).Once()

	cart := svc.Clear(ctx, "user-1")

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "user-1", cart.UserID)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}
