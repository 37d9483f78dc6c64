package services

import (
	"context"
	"fmt"
	"log"

	"meetapp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendSubscriptionConfirmation notifies the organizer of a new subscriber
// using the "subscription" template.
func (s *emailService) SendSubscriptionConfirmation(ctx context.Context, data *domain.SubscriptionEmailData) error {
	if data == nil {
		return fmt.Errorf("subscription email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("subscription", data)
	if err != nil {
		return fmt.Errorf("failed to render subscription template: %w", err)
	}
	if err := s.mailer.Send(data.OrganizerEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send subscription email: %w", err)
	}
	log.Printf("[EMAIL] Subscription confirmation sent to %s", data.OrganizerEmail)
	return nil
}
