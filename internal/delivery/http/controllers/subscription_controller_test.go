package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetapp/internal/delivery/http/helpers"
	"meetapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriptionService implements domain.SubscriptionService for handler tests.
type fakeSubscriptionService struct {
	listResult      []*domain.SubscriptionWithMeetup
	listErr         error
	subscribeResult *domain.Subscription
	subscribeErr    error
	unsubscribeErr  error
	lastMeetupID    string
	lastCallerID    string
}

func (f *fakeSubscriptionService) List(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeSubscriptionService) Subscribe(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	f.lastCallerID = userID
	f.lastMeetupID = meetupID
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	return f.subscribeResult, nil
}

func (f *fakeSubscriptionService) Unsubscribe(ctx context.Context, subscriptionID, callerID string) error {
	f.lastCallerID = callerID
	return f.unsubscribeErr
}

func TestSubscriptionController_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeSubscriptionService{listResult: []*domain.SubscriptionWithMeetup{
			{
				Subscription: &domain.Subscription{ID: "sub-1", UserID: "user-1", MeetupID: "meetup-1"},
				Meetup:       &domain.MeetupWithDetails{Meetup: &domain.Meetup{ID: "meetup-1", Date: time.Now().Add(24 * time.Hour)}},
			},
		}}
		ctrl := NewSubscriptionController(discardLogger(), fake)

		rr := httptest.NewRecorder()
		ctrl.List(rr, authedRequest(http.MethodGet, "http://test/subscriptions", nil, "user-1"))

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
	})

	t.Run("no user in context", func(t *testing.T) {
		ctrl := NewSubscriptionController(discardLogger(), &fakeSubscriptionService{})

		rr := httptest.NewRecorder()
		ctrl.List(rr, authedRequest(http.MethodGet, "http://test/subscriptions", nil, ""))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		ctrl := NewSubscriptionController(discardLogger(), &fakeSubscriptionService{listErr: assert.AnError})

		rr := httptest.NewRecorder()
		ctrl.List(rr, authedRequest(http.MethodGet, "http://test/subscriptions", nil, "user-1"))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestSubscriptionController_Subscribe(t *testing.T) {
	tests := []struct {
		name        string
		fake        *fakeSubscriptionService
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:       "success",
			fake:       &fakeSubscriptionService{subscribeResult: &domain.Subscription{ID: "sub-1", UserID: "user-1", MeetupID: "meetup-1"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "meetup not found",
			fake:       &fakeSubscriptionService{subscribeErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:        "past meetup",
			fake:        &fakeSubscriptionService{subscribeErr: domain.ErrPastMeetup},
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "cannot subscribe to past meetups",
		},
		{
			name:        "own meetup",
			fake:        &fakeSubscriptionService{subscribeErr: domain.ErrSelfSubscription},
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "you cannot subscribe to a meetup organized by you",
		},
		{
			name:        "already subscribed",
			fake:        &fakeSubscriptionService{subscribeErr: domain.ErrDuplicateSubscription},
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "you are already subscribed to this meetup",
		},
		{
			name:        "time conflict",
			fake:        &fakeSubscriptionService{subscribeErr: domain.ErrTimeConflict},
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "can't subscribe to two meetups with the same date and time",
		},
		{
			name:       "service error",
			fake:       &fakeSubscriptionService{subscribeErr: assert.AnError},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSubscriptionController(discardLogger(), tt.fake)

			req := authedRequest(http.MethodPost, "http://test/meetups/meetup-1/subscriptions", nil, "user-1")
			req.SetPathValue("meetupID", "meetup-1")
			rr := httptest.NewRecorder()
			ctrl.Subscribe(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, envelope.Error.Message)
				}
			} else {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "meetup-1", tt.fake.lastMeetupID)
				assert.Equal(t, "user-1", tt.fake.lastCallerID)
			}
		})
	}

	t.Run("no user in context", func(t *testing.T) {
		ctrl := NewSubscriptionController(discardLogger(), &fakeSubscriptionService{})

		req := authedRequest(http.MethodPost, "http://test/meetups/meetup-1/subscriptions", nil, "")
		req.SetPathValue("meetupID", "meetup-1")
		rr := httptest.NewRecorder()
		ctrl.Subscribe(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestSubscriptionController_Unsubscribe(t *testing.T) {
	t.Run("success returns no content", func(t *testing.T) {
		fake := &fakeSubscriptionService{}
		ctrl := NewSubscriptionController(discardLogger(), fake)

		req := authedRequest(http.MethodDelete, "http://test/subscriptions/sub-1", nil, "user-1")
		req.SetPathValue("subscriptionID", "sub-1")
		rr := httptest.NewRecorder()
		ctrl.Unsubscribe(rr, req)

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
		assert.Equal(t, "user-1", fake.lastCallerID)
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := NewSubscriptionController(discardLogger(), &fakeSubscriptionService{unsubscribeErr: domain.ErrForbidden})

		req := authedRequest(http.MethodDelete, "http://test/subscriptions/sub-1", nil, "user-1")
		req.SetPathValue("subscriptionID", "sub-1")
		rr := httptest.NewRecorder()
		ctrl.Unsubscribe(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewSubscriptionController(discardLogger(), &fakeSubscriptionService{unsubscribeErr: domain.ErrNotFound})

		req := authedRequest(http.MethodDelete, "http://test/subscriptions/missing", nil, "user-1")
		req.SetPathValue("subscriptionID", "missing")
		rr := httptest.NewRecorder()
		ctrl.Unsubscribe(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
