package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
)

// OrderWriter inserts a purchase record as one transaction.
type OrderWriter interface {
	Create(ctx context.Context, order *models.Order) error
}

// CheckoutPublisher announces a completed purchase, best-effort.
type CheckoutPublisher interface {
	SendCheckoutEvent(ctx context.Context, event models.CheckoutEvent) error
}

// CheckoutService turns a cart into a purchase record. One purchase per user
// may be in flight at a time; there is no automatic retry, a failed checkout
// is retried by the user clicking again.
type CheckoutService struct {
	carts     CartStore
	orders    OrderWriter
	notifier  Notifier
	publisher CheckoutPublisher
	logger    *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutService(carts CartStore, orders OrderWriter, notifier Notifier, publisher CheckoutPublisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		inFlight:  make(map[string]bool),
	}
}

// Purchase submits the identity's cart as a single order.
//
// An absent identity never reaches the order store: the caller gets
// ErrNotAuthenticated and should redirect to sign-in. On success the cart is
// cleared and the confirmation points at the buyer dashboard; on failure the
// cart is left exactly as it was and no redirect happens.
func (s *CheckoutService) Purchase(ctx context.Context, identity *models.Identity) (*models.PurchaseConfirmation, error) {
	if identity == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	if !s.begin(identity.UserID) {
		return nil, apperrors.ErrCheckoutInFlight
	}
	defer s.end(identity.UserID)

	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidInput.Wrap(err)
	}

	cart := s.carts.Load(ctx, identity.UserID)
	if cart.IsEmpty() {
		return nil, apperrors.ErrEmptyCart
	}

	order := buildOrder(userID, cart)
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Checkout failed",
			zap.String("user_id", identity.UserID), zap.Error(err))
		s.notifier.Show(ctx, identity.UserID,
			fmt.Sprintf("Purchase failed: %v", err), models.NotificationError)
		return nil, apperrors.ErrRemoteWrite.WithMessage("Purchase failed").Wrap(err)
	}

	s.carts.Delete(ctx, identity.UserID)
	s.notifier.Show(ctx, identity.UserID, "Purchase successful! Your services are ready.", models.NotificationSuccess)

	event := models.CheckoutEvent{
		Event:       "checkout.completed",
		UserID:      identity.UserID,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Items:       order.Items,
		Amount:      order.Amount,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.SendCheckoutEvent(ctx, event); err != nil {
		// Best-effort: the purchase stands even if the event never lands.
		s.logger.Warn("Failed to publish checkout event",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	return &models.PurchaseConfirmation{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Amount:      order.Amount,
		RedirectTo:  "customer-dashboard",
	}, nil
}

// buildOrder maps cart lines to order lines one-for-one, carrying the price
// captured at add-to-cart time.
func buildOrder(userID uuid.UUID, cart models.Cart) *models.Order {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ID:              uuid.New(),
			ServiceID:       line.ServiceID,
			DeveloperID:     line.DeveloperID,
			Title:           line.Title,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.UnitPrice,
		})
	}

	id := uuid.New()
	return &models.Order{
		ID:          id,
		OrderNumber: fmt.Sprintf("ORD-%d-%s", time.Now().Unix(), id.String()[:8]),
		UserID:      userID,
		Amount:      cart.Subtotal(),
		Status:      models.OrderStatusCompleted,
		Items:       items,
	}
}

func (s *CheckoutService) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *CheckoutService) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
