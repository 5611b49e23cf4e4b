package models

import "time"

// Notification kinds
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Notification is an ephemeral user-facing toast. At most one is live per
// user at any instant; a newer one replaces a pending one rather than
// queuing behind it, and a live one self-expires after a fixed duration
// unless dismissed earlier.
type Notification struct {
	Text      string    `json:"text"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
