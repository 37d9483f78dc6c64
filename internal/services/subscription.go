package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetapp/internal/domain"
	"meetapp/internal/jobs"
)

type subscriptionService struct {
	subscriptionRepo domain.SubscriptionRepository
	meetupRepo       domain.MeetupRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	dispatcher       domain.Dispatcher
	logger           *slog.Logger
}

// NewSubscriptionService creates a SubscriptionService with the given
// repositories, dispatcher, and logger for best-effort side effects.
func NewSubscriptionService(
	subscriptionRepo domain.SubscriptionRepository,
	meetupRepo domain.MeetupRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	dispatcher domain.Dispatcher,
	logger *slog.Logger,
) domain.SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		meetupRepo:       meetupRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
		logger:           logger,
	}
}

func (s *subscriptionService) List(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	subs, err := s.subscriptionRepo.ListUpcomingByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if subs == nil {
		subs = []*domain.SubscriptionWithMeetup{}
	}
	return subs, nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	details, err := s.meetupRepo.GetWithDetails(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	meetup := details.Meetup

	if meetup.Past() {
		return nil, domain.ErrPastMeetup
	}
	if meetup.OwnerID == user.ID {
		return nil, domain.ErrSelfSubscription
	}

	if _, err := s.subscriptionRepo.GetByUserAndMeetup(ctx, user.ID, meetup.ID); err == nil {
		return nil, domain.ErrDuplicateSubscription
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	conflict, err := s.subscriptionRepo.ExistsByUserAndDate(ctx, user.ID, meetup.Date)
	if err != nil {
		return nil, fmt.Errorf("check date conflict: %w", err)
	}
	if conflict {
		return nil, domain.ErrTimeConflict
	}

	sub := domain.NewSubscription(user.ID, meetup.ID, time.Now())
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		// The unique constraint on (user, meetup) is the backstop for
		// concurrent subscribe attempts that raced past the checks above.
		if errors.Is(err, domain.ErrDuplicateSubscription) {
			return nil, domain.ErrDuplicateSubscription
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	// Side effects past this point never roll back the subscription.
	content := fmt.Sprintf("%s subscribed to your meetup %s", user.Name, meetup.Title)
	notification := domain.NewNotification(meetup.OwnerID, content, time.Now())
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WarnContext(ctx, "notification append failed",
			"subscription_id", sub.ID, "meetup_id", meetup.ID, "err", err)
	}

	payload := jobs.NewSubscriptionMailPayload(details, user)
	if err := s.dispatcher.Enqueue(ctx, jobs.SubscriptionMailKey, payload); err != nil {
		s.logger.WarnContext(ctx, "subscription mail enqueue failed",
			"subscription_id", sub.ID, "meetup_id", meetup.ID, "err", err)
	}

	return sub, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriptionID, callerID string) error {
	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get subscription: %w", err)
	}
	if sub.UserID != callerID {
		return domain.ErrForbidden
	}
	if err := s.subscriptionRepo.Delete(ctx, subscriptionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}
