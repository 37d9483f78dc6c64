package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"meetapp/internal/domain"
)

// SubscriptionMailKey identifies the subscription confirmation mail job.
const SubscriptionMailKey = "SubscriptionMail"

// MeetupSnapshot is the meetup state captured when the job was enqueued.
// Later edits to the meetup do not alter an in-flight job.
type MeetupSnapshot struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	OrganizerName  string `json:"organizer_name"`
	OrganizerEmail string `json:"organizer_email"`
}

// UserSnapshot is the subscriber state captured when the job was enqueued.
type UserSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubscriptionMailPayload is the payload for SubscriptionMailKey jobs.
type SubscriptionMailPayload struct {
	Meetup MeetupSnapshot `json:"meetup"`
	User   UserSnapshot   `json:"user"`
}

// NewSubscriptionMailPayload snapshots the meetup and subscriber into a
// payload that needs no repository reads at delivery time.
func NewSubscriptionMailPayload(details *domain.MeetupWithDetails, subscriber *domain.User) SubscriptionMailPayload {
	snapshot := MeetupSnapshot{
		ID:       details.Meetup.ID,
		Title:    details.Meetup.Title,
		Location: details.Meetup.Location,
		Date:     details.Meetup.Date.Format("January 2, 2006 at 3:04 PM"),
	}
	if details.Owner != nil {
		snapshot.OrganizerName = details.Owner.Name
		snapshot.OrganizerEmail = details.Owner.Email
	}
	return SubscriptionMailPayload{
		Meetup: snapshot,
		User: UserSnapshot{
			ID:    subscriber.ID,
			Name:  subscriber.Name,
			Email: subscriber.Email,
		},
	}
}

// SubscriptionMailHandler delivers the confirmation email for one job.
// Delivery is at-least-once, so a duplicate run only sends a duplicate
// email; there is no state to corrupt.
type SubscriptionMailHandler struct {
	emailService domain.EmailService
}

// NewSubscriptionMailHandler creates a handler that sends through the given EmailService.
func NewSubscriptionMailHandler(emailService domain.EmailService) *SubscriptionMailHandler {
	return &SubscriptionMailHandler{emailService: emailService}
}

// Key returns SubscriptionMailKey.
func (h *SubscriptionMailHandler) Key() string {
	return SubscriptionMailKey
}

// Handle decodes the payload and sends the confirmation email to the organizer.
func (h *SubscriptionMailHandler) Handle(ctx context.Context, payload []byte) error {
	var p SubscriptionMailPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode subscription mail payload: %w", err)
	}
	data := &domain.SubscriptionEmailData{
		OrganizerName:  p.Meetup.OrganizerName,
		OrganizerEmail: p.Meetup.OrganizerEmail,
		SubscriberName: p.User.Name,
		MeetupTitle:    p.Meetup.Title,
		MeetupLocation: p.Meetup.Location,
		MeetupDate:     p.Meetup.Date,
	}
	if err := h.emailService.SendSubscriptionConfirmation(ctx, data); err != nil {
		return fmt.Errorf("send subscription confirmation: %w", err)
	}
	return nil
}
