package services

import (
	"context"
	"errors"
	"fmt"

	"meetapp/internal/domain"
)

// Organizer inboxes return at most this many entries, newest first.
const notificationListLimit = 20

type notificationService struct {
	notificationRepo domain.NotificationRepository
	meetupRepo       domain.MeetupRepository
}

// NewNotificationService creates a NotificationService with the given repositories.
func NewNotificationService(notificationRepo domain.NotificationRepository, meetupRepo domain.MeetupRepository) domain.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		meetupRepo:       meetupRepo,
	}
}

func (s *notificationService) ListForOrganizer(ctx context.Context, userID string) ([]*domain.Notification, error) {
	organizer, err := s.meetupRepo.ExistsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check organizer: %w", err)
	}
	if !organizer {
		return nil, domain.ErrForbidden
	}
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) Acknowledge(ctx context.Context, notificationID, callerID string) (*domain.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	// Only the recipient may mark their own notification read.
	if notification.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	updated, err := s.notificationRepo.MarkRead(ctx, notificationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return updated, nil
}
