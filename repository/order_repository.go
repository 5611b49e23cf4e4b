package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace-backend/models"
)

// OrderRepository defines the interface for purchase record access. Orders
// are write-once: there is deliberately no update or delete.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	DistinctServiceIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	HasPurchasedFromDeveloper(ctx context.Context, userID uuid.UUID, developerID string) (bool, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order and its items in a single transaction.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByUserID retrieves orders for a specific user with pagination
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// DistinctServiceIDs returns the unique catalog services a user has ever
// purchased, newest first. Buying the same service twice yields one entry.
func (r *GormOrderRepository) DistinctServiceIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Distinct("order_items.service_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.deleted_at IS NULL", userID).
		Pluck("order_items.service_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// HasPurchasedFromDeveloper reports whether the user has at least one order
// line sold by the given developer. This backs review eligibility.
func (r *GormOrderRepository) HasPurchasedFromDeveloper(ctx context.Context, userID uuid.UUID, developerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.developer_id = ? AND orders.deleted_at IS NULL", userID, developerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
