package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
	"marketplace-backend/repository"
)

// PurchaseHistory is the buyer dashboard view: the services a user owns,
// deduplicated (buying the same service twice lists it once), plus the raw
// orders for the receipt list.
type PurchaseHistory struct {
	Services []models.Service `json:"services"`
	Orders   []models.Order   `json:"orders"`
	Meta     PageMeta         `json:"meta"`
}

// ServiceReader hydrates purchased service IDs into catalog listings.
type ServiceReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Service, error)
}

type OrderService struct {
	orders   repository.OrderRepository
	catalog  ServiceReader
	notifier Notifier
	logger   *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, catalog ServiceReader, notifier Notifier, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, notifier: notifier, logger: logger}
}

// History returns the user's paginated purchase history. A failed read
// surfaces as an error notification plus an error; there is no sample-data
// fallback for purchase records.
func (s *OrderService) History(ctx context.Context, identity *models.Identity, page, limit int) (*PurchaseHistory, error) {
	if identity == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidInput.Wrap(err)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, total, err := s.orders.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.String("user_id", identity.UserID), zap.Error(err))
		s.notifier.Show(ctx, identity.UserID, "Could not fetch purchase history.", models.NotificationError)
		return nil, apperrors.ErrRemoteRead.WithMessage("Could not fetch purchase history").Wrap(err)
	}

	serviceIDs, err := s.orders.DistinctServiceIDs(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch purchased services", zap.String("user_id", identity.UserID), zap.Error(err))
		s.notifier.Show(ctx, identity.UserID, "Could not fetch purchase history.", models.NotificationError)
		return nil, apperrors.ErrRemoteRead.WithMessage("Could not fetch purchase history").Wrap(err)
	}

	services := []models.Service{}
	if len(serviceIDs) > 0 {
		// A purchased service deleted from the catalog just drops out of the
		// hydrated list; the order rows still carry its title.
		services, err = s.catalog.FindByIDs(ctx, serviceIDs)
		if err != nil {
			s.logger.Warn("Failed to hydrate purchased services", zap.Error(err))
			services = []models.Service{}
		}
	}

	return &PurchaseHistory{
		Services: services,
		Orders:   orders,
		Meta:     NewPageMeta(page, limit, total),
	}, nil
}
