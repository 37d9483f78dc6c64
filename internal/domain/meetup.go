package domain

import (
	"context"
	"time"
)

// Page sizes are fixed per listing view rather than taken from the request.
const (
	BrowsePageSize    = 10
	OrganizerPageSize = 20
)

// Meetup represents a scheduled, organizer-owned event.
// swagger:model Meetup
type Meetup struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	BannerID    *string   `json:"banner_id,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMeetup returns a new Meetup with the given fields. ID is typically set by the repository on create.
func NewMeetup(title, description, location string, date time.Time, bannerID *string, ownerID string, createdAt, updatedAt time.Time) *Meetup {
	return &Meetup{
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		BannerID:    bannerID,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Past reports whether the meetup date has already elapsed. It is derived
// from the wall clock on every call and is never persisted.
func (m *Meetup) Past() bool {
	return m.Date.Before(time.Now())
}

// MeetupWithDetails bundles a meetup with its owner and banner projections.
type MeetupWithDetails struct {
	Meetup *Meetup `json:"meetup"`
	Owner  *User   `json:"owner"`
	Banner *File   `json:"banner,omitempty"`
	Past   bool    `json:"past"`
}

// MeetupQuery restricts a meetup listing. Zero values mean no restriction.
type MeetupQuery struct {
	DateFrom *time.Time
	DateTo   *time.Time
	OwnerID  string
}

// MeetupUpdate carries a partial update; nil fields are left unchanged.
type MeetupUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Date        *time.Time
	BannerID    *string
}

// MeetupRepository defines the interface for meetup storage
type MeetupRepository interface {
	Create(ctx context.Context, meetup *Meetup) error
	GetByID(ctx context.Context, id string) (*Meetup, error)
	GetWithDetails(ctx context.Context, id string) (*MeetupWithDetails, error)
	List(ctx context.Context, query MeetupQuery, params PaginationParams) ([]*MeetupWithDetails, error)
	Update(ctx context.Context, id string, update MeetupUpdate) (*Meetup, error)
	Delete(ctx context.Context, id string) error
	ExistsByOwner(ctx context.Context, ownerID string) (bool, error)
}

// CreateMeetupInput holds the caller-supplied fields for a new meetup.
// The owner always comes from the authenticated caller, never the body.
type CreateMeetupInput struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
	BannerID    *string
}

// MeetupService defines the business logic for the meetup lifecycle.
type MeetupService interface {
	// List returns a page of meetups ordered by ascending date, optionally
	// restricted to the calendar day containing *day and/or to an owner.
	List(ctx context.Context, day *time.Time, ownerID string, params PaginationParams) ([]*MeetupWithDetails, error)
	Create(ctx context.Context, ownerID string, in CreateMeetupInput) (*Meetup, error)
	Get(ctx context.Context, id string) (*MeetupWithDetails, error)
	Update(ctx context.Context, meetupID, callerID string, update MeetupUpdate) (*Meetup, error)
	Cancel(ctx context.Context, meetupID, callerID string) error
}
