package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusCompleted = "completed"
)

// Order is a write-once purchase record. It is created in a single
// transaction at checkout and never mutated afterwards.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber string    `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	// Amount is the order total in the catalog currency, captured at checkout.
	Amount    float64        `gorm:"not null" json:"amount"`
	Status    string         `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Items     []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem carries the price captured at add-to-cart time, not a re-fetched
// catalog price. DeveloperID denormalizes the seller so review eligibility is
// a single query against order_items.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ServiceID       string    `gorm:"type:varchar(64);not null;index" json:"service_id"`
	DeveloperID     string    `gorm:"type:varchar(64);not null;index" json:"developer_id"`
	Title           string    `gorm:"not null" json:"title"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64   `gorm:"not null" json:"price_at_purchase"`
}

// CheckoutEvent is the best-effort event published after a successful
// purchase.
type CheckoutEvent struct {
	Event       string      `json:"event"` // e.g. "checkout.completed"
	UserID      string      `json:"user_id"`
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	Items       []OrderItem `json:"items"`
	Amount      float64     `json:"amount"`
	Timestamp   time.Time   `json:"timestamp"`
}

// PurchaseConfirmation is returned to the caller after a successful checkout.
type PurchaseConfirmation struct {
	OrderID     string  `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	Amount      float64 `json:"amount"`
	RedirectTo  string  `json:"redirect_to"`
}
