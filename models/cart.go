package models

import "time"

// CartItem is one line of a cart. UnitPrice is the catalog price captured at
// the time of the first add; it is never refreshed from the catalog, so the
// price a buyer saw when adding is the price they pay at checkout.
type CartItem struct {
	ServiceID   string  `json:"service_id"`
	Title       string  `json:"title"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	DeveloperID string  `json:"developer_id"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// EmptyCart returns a new cart with no items for the given user.
func EmptyCart(userID string) Cart {
	return Cart{UserID: userID, Items: []CartItem{}}
}

// clone copies the item slice so transitions never alias the input cart.
func (c Cart) clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

// AddItem returns the cart with one more unit of the given service. If a line
// for the service already exists its quantity is incremented and the captured
// title and price are left unchanged; otherwise a new line with quantity 1 is
// appended, preserving discovery order.
func (c Cart) AddItem(item CartItem) Cart {
	next := c.clone()
	for i := range next.Items {
		if next.Items[i].ServiceID == item.ServiceID {
			next.Items[i].Quantity++
			return next
		}
	}
	item.Quantity = 1
	next.Items = append(next.Items, item)
	return next
}

// RemoveItem returns the cart without the matching line. Removing an absent
// service is a no-op, not an error.
func (c Cart) RemoveItem(serviceID string) Cart {
	next := c.clone()
	for i := range next.Items {
		if next.Items[i].ServiceID == serviceID {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
			return next
		}
	}
	return next
}

// SetQuantity returns the cart with the line's quantity replaced by n.
// n <= 0 removes the line; out-of-range values are clamped, never rejected.
// A missing service is a no-op.
func (c Cart) SetQuantity(serviceID string, n int) Cart {
	if n <= 0 {
		return c.RemoveItem(serviceID)
	}
	next := c.clone()
	for i := range next.Items {
		if next.Items[i].ServiceID == serviceID {
			next.Items[i].Quantity = n
			return next
		}
	}
	return next
}

// Cleared returns an empty cart for the same user.
func (c Cart) Cleared() Cart {
	return EmptyCart(c.UserID)
}

// ItemCount is the total number of units across all lines.
func (c Cart) ItemCount() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity across all lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Find returns the line for the given service, if present.
func (c Cart) Find(serviceID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ServiceID == serviceID {
			return item, true
		}
	}
	return CartItem{}, false
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
