package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes with errors.Is; services wrap unexpected failures instead.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")

	// Temporal rule violations.
	ErrPastDate   = errors.New("date is in the past")
	ErrPastMeetup = errors.New("meetup has already happened")

	// Subscription admission rule violations.
	ErrSelfSubscription      = errors.New("cannot subscribe to your own meetup")
	ErrDuplicateSubscription = errors.New("already subscribed to this meetup")
	ErrTimeConflict          = errors.New("already subscribed to a meetup at the same time")
)
