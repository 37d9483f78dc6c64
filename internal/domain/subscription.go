package domain

import (
	"context"
	"time"
)

// Subscription represents a user's enrollment in a meetup they do not organize.
// swagger:model Subscription
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MeetupID  string    `json:"meetup_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubscription returns a new Subscription. ID is typically set by the repository on create.
func NewSubscription(userID, meetupID string, createdAt time.Time) *Subscription {
	return &Subscription{
		UserID:    userID,
		MeetupID:  meetupID,
		CreatedAt: createdAt,
	}
}

// SubscriptionWithMeetup bundles a subscription with its meetup projection.
type SubscriptionWithMeetup struct {
	Subscription *Subscription      `json:"subscription"`
	Meetup       *MeetupWithDetails `json:"meetup"`
}

// SubscriptionRepository defines the interface for subscription storage.
// Create must report ErrDuplicateSubscription when the (user, meetup)
// uniqueness constraint is violated; the constraint is the authoritative
// guard against concurrent subscribe races.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	GetByUserAndMeetup(ctx context.Context, userID, meetupID string) (*Subscription, error)
	ExistsByUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error)
	ListUpcomingByUser(ctx context.Context, userID string) ([]*SubscriptionWithMeetup, error)
	Delete(ctx context.Context, id string) error
}

// SubscriptionService defines the subscription admission and removal rules.
type SubscriptionService interface {
	// List returns the user's subscriptions to meetups whose date is still
	// in the future, ordered by that date ascending.
	List(ctx context.Context, userID string) ([]*SubscriptionWithMeetup, error)
	Subscribe(ctx context.Context, userID, meetupID string) (*Subscription, error)
	Unsubscribe(ctx context.Context, subscriptionID, callerID string) error
}
