package services

import (
	"context"
	"fmt"

	"marketplace-backend/models"
)

// CartStore is the persistent store adapter boundary. Load never fails
// upward and Save/Delete are best-effort, so none of them return errors; the
// adapter owns logging its own failures.
type CartStore interface {
	Load(ctx context.Context, userID string) models.Cart
	Save(ctx context.Context, cart models.Cart)
	Delete(ctx context.Context, userID string)
}

// CartService is the command handler around the pure cart transitions. Every
// command runs the same three explicit steps: transition, persist, notify.
type CartService struct {
	store    CartStore
	notifier Notifier
}

func NewCartService(store CartStore, notifier Notifier) *CartService {
	return &CartService{store: store, notifier: notifier}
}

// Get returns the user's current cart.
func (s *CartService) Get(ctx context.Context, userID string) models.Cart {
	return s.store.Load(ctx, userID)
}

// Add puts one unit of the service into the cart. The price and title
// captured here stay authoritative for the line; later catalog changes do
// not re-price an already-added item.
func (s *CartService) Add(ctx context.Context, userID string, svc models.Service) models.Cart {
	cart := s.store.Load(ctx, userID)
	cart = cart.AddItem(models.CartItem{
		ServiceID:   svc.ID,
		Title:       svc.Title,
		UnitPrice:   svc.Price,
		DeveloperID: svc.DeveloperID,
	})
	s.store.Save(ctx, cart)
	s.notifier.Show(ctx, userID, fmt.Sprintf("'%s' added to cart!", svc.Title), models.NotificationSuccess)
	return cart
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, serviceID string, quantity int) models.Cart {
	cart := s.store.Load(ctx, userID)
	item, found := cart.Find(serviceID)
	cart = cart.SetQuantity(serviceID, quantity)
	s.store.Save(ctx, cart)
	if found {
		if quantity <= 0 {
			s.notifier.Show(ctx, userID, fmt.Sprintf("'%s' removed from cart.", item.Title), models.NotificationSuccess)
		} else {
			s.notifier.Show(ctx, userID, fmt.Sprintf("Updated quantity of '%s'.", item.Title), models.NotificationSuccess)
		}
	}
	return cart
}

// Remove deletes a line; removing an absent service is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, serviceID string) models.Cart {
	cart := s.store.Load(ctx, userID)
	item, found := cart.Find(serviceID)
	cart = cart.RemoveItem(serviceID)
	s.store.Save(ctx, cart)
	if found {
		s.notifier.Show(ctx, userID, fmt.Sprintf("'%s' removed from cart.", item.Title), models.NotificationSuccess)
	}
	return cart
}

// Clear empties the cart unconditionally.
func (s *CartService) Clear(ctx context.Context, userID string) models.Cart {
	cart := s.store.Load(ctx, userID).Cleared()
	s.store.Delete(ctx, userID)
	s.notifier.Show(ctx, userID, "Cart cleared.", models.NotificationSuccess)
	return cart
}
