package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SubscriptionEmailData holds data for the subscription confirmation email
// sent to the meetup organizer. All values are snapshots taken when the
// subscription was admitted, not live records.
type SubscriptionEmailData struct {
	OrganizerName  string
	OrganizerEmail string
	SubscriberName string
	MeetupTitle    string
	MeetupLocation string
	MeetupDate     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSubscriptionConfirmation(ctx context.Context, data *SubscriptionEmailData) error
}
