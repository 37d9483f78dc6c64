package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"meetapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListForOrganizer(t *testing.T) {
	ctx := context.Background()

	newOrganizerRepo := func(t *testing.T, ownerID string) *fakeMeetupRepo {
		t.Helper()
		repo := newFakeMeetupRepo()
		m := domain.NewMeetup("Go Meetup", "d", "l", time.Now().Add(24*time.Hour), nil, ownerID, time.Now(), time.Now())
		require.NoError(t, repo.Create(ctx, m))
		return repo
	}

	t.Run("organizer sees own notifications newest first", func(t *testing.T) {
		meetups := newOrganizerRepo(t, "organizer-1")
		notifications := newFakeNotificationRepo()
		svc := NewNotificationService(notifications, meetups)

		first := domain.NewNotification("organizer-1", "first", time.Now().Add(-2*time.Minute))
		second := domain.NewNotification("organizer-1", "second", time.Now().Add(-time.Minute))
		other := domain.NewNotification("organizer-2", "not yours", time.Now())
		require.NoError(t, notifications.Create(ctx, first))
		require.NoError(t, notifications.Create(ctx, second))
		require.NoError(t, notifications.Create(ctx, other))

		list, err := svc.ListForOrganizer(ctx, "organizer-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "second", list[0].Content)
		assert.Equal(t, "first", list[1].Content)
	})

	t.Run("listing is capped at twenty entries", func(t *testing.T) {
		meetups := newOrganizerRepo(t, "organizer-1")
		notifications := newFakeNotificationRepo()
		svc := NewNotificationService(notifications, meetups)

		for i := 0; i < 25; i++ {
			n := domain.NewNotification("organizer-1", fmt.Sprintf("entry %d", i), time.Now())
			require.NoError(t, notifications.Create(ctx, n))
		}

		list, err := svc.ListForOrganizer(ctx, "organizer-1")
		require.NoError(t, err)
		assert.Len(t, list, 20)
		// Newest entry leads, the oldest five fall off.
		assert.Equal(t, "entry 24", list[0].Content)
		assert.Equal(t, "entry 5", list[19].Content)
	})

	t.Run("non-organizer is forbidden", func(t *testing.T) {
		svc := NewNotificationService(newFakeNotificationRepo(), newFakeMeetupRepo())
		_, err := svc.ListForOrganizer(ctx, "plain-user")
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("empty inbox is a non-nil slice", func(t *testing.T) {
		meetups := newOrganizerRepo(t, "organizer-1")
		svc := NewNotificationService(newFakeNotificationRepo(), meetups)

		list, err := svc.ListForOrganizer(ctx, "organizer-1")
		require.NoError(t, err)
		require.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestNotificationService_Acknowledge(t *testing.T) {
	ctx := context.Background()

	t.Run("recipient marks notification read", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		svc := NewNotificationService(notifications, newFakeMeetupRepo())
		n := domain.NewNotification("organizer-1", "hello", time.Now())
		require.NoError(t, notifications.Create(ctx, n))

		updated, err := svc.Acknowledge(ctx, n.ID, "organizer-1")
		require.NoError(t, err)
		assert.True(t, updated.Read)
	})

	t.Run("acknowledging twice is a no-op", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		svc := NewNotificationService(notifications, newFakeMeetupRepo())
		n := domain.NewNotification("organizer-1", "hello", time.Now())
		require.NoError(t, notifications.Create(ctx, n))

		_, err := svc.Acknowledge(ctx, n.ID, "organizer-1")
		require.NoError(t, err)
		updated, err := svc.Acknowledge(ctx, n.ID, "organizer-1")
		require.NoError(t, err)
		assert.True(t, updated.Read)
	})

	t.Run("non-recipient is forbidden", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		svc := NewNotificationService(notifications, newFakeMeetupRepo())
		n := domain.NewNotification("organizer-1", "hello", time.Now())
		require.NoError(t, notifications.Create(ctx, n))

		_, err := svc.Acknowledge(ctx, n.ID, "intruder")
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.False(t, notifications.byID[n.ID].Read)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewNotificationService(newFakeNotificationRepo(), newFakeMeetupRepo())
		_, err := svc.Acknowledge(ctx, "missing", "organizer-1")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
