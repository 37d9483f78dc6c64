package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetapp/internal/domain"
)

type meetupService struct {
	meetupRepo domain.MeetupRepository
}

// NewMeetupService creates a MeetupService backed by the given repository.
func NewMeetupService(meetupRepo domain.MeetupRepository) domain.MeetupService {
	return &meetupService{meetupRepo: meetupRepo}
}

func (s *meetupService) List(ctx context.Context, day *time.Time, ownerID string, params domain.PaginationParams) ([]*domain.MeetupWithDetails, error) {
	query := domain.MeetupQuery{OwnerID: ownerID}
	if day != nil {
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		to := from.Add(24*time.Hour - time.Nanosecond)
		query.DateFrom = &from
		query.DateTo = &to
	}
	meetups, err := s.meetupRepo.List(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("list meetups: %w", err)
	}
	if meetups == nil {
		meetups = []*domain.MeetupWithDetails{}
	}
	return meetups, nil
}

func (s *meetupService) Create(ctx context.Context, ownerID string, in domain.CreateMeetupInput) (*domain.Meetup, error) {
	if err := validateMeetupInput(in); err != nil {
		return nil, err
	}
	// The past-check runs at hour granularity: any date from the start of
	// the current hour onwards is accepted.
	if in.Date.Before(time.Now().Truncate(time.Hour)) {
		return nil, domain.ErrPastDate
	}

	now := time.Now()
	meetup := domain.NewMeetup(in.Title, in.Description, in.Location, in.Date, in.BannerID, ownerID, now, now)
	if err := s.meetupRepo.Create(ctx, meetup); err != nil {
		return nil, fmt.Errorf("create meetup: %w", err)
	}
	return meetup, nil
}

func validateMeetupInput(in domain.CreateMeetupInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}

func (s *meetupService) Get(ctx context.Context, id string) (*domain.MeetupWithDetails, error) {
	details, err := s.meetupRepo.GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	return details, nil
}

func (s *meetupService) Update(ctx context.Context, meetupID, callerID string, update domain.MeetupUpdate) (*domain.Meetup, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	if meetup.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	if update.Date != nil && update.Date.Before(time.Now()) {
		return nil, domain.ErrPastDate
	}
	// An elapsed meetup is frozen even when the edit supplies no new date.
	if meetup.Past() {
		return nil, domain.ErrPastMeetup
	}
	updated, err := s.meetupRepo.Update(ctx, meetupID, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update meetup: %w", err)
	}
	return updated, nil
}

func (s *meetupService) Cancel(ctx context.Context, meetupID, callerID string) error {
	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get meetup: %w", err)
	}
	if meetup.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if meetup.Past() {
		return domain.ErrPastMeetup
	}
	if err := s.meetupRepo.Delete(ctx, meetupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete meetup: %w", err)
	}
	return nil
}
