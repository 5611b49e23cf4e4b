package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace-backend/models"
)

// NotificationRepository holds at most one live notification per user. The
// Redis key TTL is the auto-expiry: an undismissed notification simply
// disappears when its TTL runs out.
type NotificationRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNotificationRepository(client *redis.Client, ttl time.Duration) *NotificationRepository {
	return &NotificationRepository{client: client, ttl: ttl}
}

func (r *NotificationRepository) getKey(userID string) string {
	return fmt.Sprintf("notice:user:%s", userID)
}

// Set replaces whatever notification is pending for the user.
func (r *NotificationRepository) Set(ctx context.Context, userID string, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(userID), data, r.ttl).Err()
}

// Get returns the live notification, or nil when none is pending or it has
// expired.
func (r *NotificationRepository) Get(ctx context.Context, userID string) (*models.Notification, error) {
	data, err := r.client.Get(ctx, r.getKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var n models.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete dismisses the pending notification ahead of its expiry.
func (r *NotificationRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.getKey(userID)).Err()
}
