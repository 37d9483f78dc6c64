package domain

import (
	"context"
	"time"
)

// Notification is an entry in an organizer's inbox.
// swagger:model Notification
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotification returns a new unread Notification addressed to userID.
func NewNotification(userID, content string, createdAt time.Time) *Notification {
	return &Notification{
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
}

// NotificationRepository defines the interface for notification storage.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) (*Notification, error)
}

// NotificationService defines the organizer inbox operations.
type NotificationService interface {
	// ListForOrganizer returns the caller's notifications, newest first,
	// capped at 20. Callers who organize no meetups get ErrForbidden.
	ListForOrganizer(ctx context.Context, userID string) ([]*Notification, error)
	// Acknowledge marks the notification read and returns the updated record.
	Acknowledge(ctx context.Context, notificationID, callerID string) (*Notification, error)
}
