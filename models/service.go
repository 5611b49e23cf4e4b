package models

import "time"

// Service is one catalog listing, stored in the "services" collection.
type Service struct {
	ID                string     `bson:"_id" json:"id"`
	Title             string     `bson:"title" json:"title"`
	Category          string     `bson:"category" json:"category"`
	Description       string     `bson:"description" json:"description"`
	Price             float64    `bson:"price" json:"price"`
	ImageURL          string     `bson:"image_url" json:"image_url"`
	DeveloperID       string     `bson:"developer_id" json:"developer_id"`
	DeveloperName     string     `bson:"developer_name" json:"developer_name"`
	DeveloperVerified bool       `bson:"developer_verified" json:"developer_verified"`
	Rating            float64    `bson:"rating" json:"rating"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt         *time.Time `bson:"deleted_at,omitempty" json:"-"`
}

// ServiceFilter narrows catalog listings.
type ServiceFilter struct {
	Category    string
	DeveloperID string
	Query       string
	Page        int
	PerPage     int
}

// Review is one buyer review of a developer, stored in the "reviews"
// collection. Reviews are write-once.
type Review struct {
	ID           string    `bson:"_id" json:"id"`
	DeveloperID  string    `bson:"developer_id" json:"developer_id"`
	ReviewerID   string    `bson:"reviewer_id" json:"reviewer_id"`
	ReviewerName string    `bson:"reviewer_name" json:"reviewer_name"`
	Rating       int       `bson:"rating" json:"rating"`
	Comment      string    `bson:"comment" json:"comment"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Profile is a developer's public profile, stored in the "profiles"
// collection.
type Profile struct {
	ID        string    `bson:"_id" json:"id"`
	FullName  string    `bson:"full_name" json:"full_name"`
	Bio       string    `bson:"bio" json:"bio"`
	AvatarURL string    `bson:"avatar_url" json:"avatar_url"`
	Verified  bool      `bson:"verified" json:"verified"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Message is one contact-form submission, stored in the "messages"
// collection. RecipientDeveloperID is empty for general support inquiries.
type Message struct {
	ID                   string    `bson:"_id" json:"id"`
	SenderEmail          string    `bson:"sender_email" json:"sender_email"`
	SenderUserID         string    `bson:"sender_user_id,omitempty" json:"sender_user_id,omitempty"`
	RecipientDeveloperID string    `bson:"recipient_developer_id,omitempty" json:"recipient_developer_id,omitempty"`
	Content              string    `bson:"content" json:"content"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
}
