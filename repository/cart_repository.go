package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"marketplace-backend/models"
)

// CartRepository persists cart snapshots as one JSON blob per user. It is a
// pure I/O boundary: Load never fails upward (a missing key or a corrupt
// payload yields an empty cart and a warning), and Save is best-effort (a
// write failure is logged and never corrupts the in-memory cart).
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCartRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CartRepository) getKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Load returns the persisted cart for a user, or an empty cart when nothing
// usable is stored.
func (r *CartRepository) Load(ctx context.Context, userID string) models.Cart {
	data, err := r.client.Get(ctx, r.getKey(userID)).Bytes()
	if err == redis.Nil {
		return models.EmptyCart(userID)
	}
	if err != nil {
		r.logger.Warn("Failed to load cart, starting empty",
			zap.String("user_id", userID), zap.Error(err))
		return models.EmptyCart(userID)
	}

	cart, err := decodeCart(userID, data)
	if err != nil {
		r.logger.Warn("Corrupt cart payload, starting empty",
			zap.String("user_id", userID), zap.Error(err))
		return models.EmptyCart(userID)
	}
	return cart
}

// Save stores the cart snapshot. Failures are logged, not propagated.
func (r *CartRepository) Save(ctx context.Context, cart models.Cart) {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart.Items)
	if err != nil {
		r.logger.Warn("Failed to encode cart", zap.String("user_id", cart.UserID), zap.Error(err))
		return
	}

	if err := r.client.Set(ctx, r.getKey(cart.UserID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("Failed to save cart", zap.String("user_id", cart.UserID), zap.Error(err))
	}
}

// Delete drops the persisted cart. Failures are logged, not propagated.
func (r *CartRepository) Delete(ctx context.Context, userID string) {
	if err := r.client.Del(ctx, r.getKey(userID)).Err(); err != nil {
		r.logger.Warn("Failed to delete cart", zap.String("user_id", userID), zap.Error(err))
	}
}

// decodeCart parses the canonical persisted format: a JSON array of
// {service_id, title, unit_price, quantity, developer_id} lines. Lines with a
// non-positive quantity or a duplicate service ID would violate the cart
// invariants, so a payload carrying them counts as corrupt.
func decodeCart(userID string, data []byte) (models.Cart, error) {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return models.Cart{}, err
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ServiceID == "" || item.Quantity < 1 {
			return models.Cart{}, fmt.Errorf("invalid cart line for service %q", item.ServiceID)
		}
		if seen[item.ServiceID] {
			return models.Cart{}, fmt.Errorf("duplicate cart line for service %q", item.ServiceID)
		}
		seen[item.ServiceID] = true
	}

	if items == nil {
		items = []models.CartItem{}
	}
	return models.Cart{UserID: userID, Items: items}, nil
}
