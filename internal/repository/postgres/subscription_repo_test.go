package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"meetapp/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO subscriptions \(user_id, meetup_id, created_at\)`).
			WithArgs("user-1", "meetup-1", created).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sub-1"))

		repo := NewSubscriptionRepository(db)
		sub := &domain.Subscription{UserID: "user-1", MeetupID: "meetup-1", CreatedAt: created}
		require.NoError(t, repo.Create(ctx, sub))
		require.Equal(t, "sub-1", sub.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate subscription", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO subscriptions`).
			WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "subscriptions_user_id_meetup_id_key"})

		repo := NewSubscriptionRepository(db)
		sub := &domain.Subscription{UserID: "user-1", MeetupID: "meetup-1", CreatedAt: created}
		require.ErrorIs(t, repo.Create(ctx, sub), domain.ErrDuplicateSubscription)
	})

	t.Run("other db errors pass through", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO subscriptions`).
			WillReturnError(sql.ErrConnDone)

		repo := NewSubscriptionRepository(db)
		sub := &domain.Subscription{UserID: "user-1", MeetupID: "meetup-1", CreatedAt: created}
		err = repo.Create(ctx, sub)
		require.Error(t, err)
		require.NotErrorIs(t, err, domain.ErrDuplicateSubscription)
	})
}

func TestSubscriptionRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "meetup_id", "created_at"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, user_id, meetup_id, created_at\s+FROM subscriptions\s+WHERE id = \$1`).
			WithArgs("sub-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("sub-1", "user-1", "meetup-1", created))

		repo := NewSubscriptionRepository(db)
		sub, err := repo.GetByID(ctx, "sub-1")
		require.NoError(t, err)
		require.Equal(t, "user-1", sub.UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM subscriptions\s+WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewSubscriptionRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSubscriptionRepository_GetByUserAndMeetup(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "meetup_id", "created_at"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE user_id = \$1 AND meetup_id = \$2`).
			WithArgs("user-1", "meetup-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("sub-1", "user-1", "meetup-1", created))

		repo := NewSubscriptionRepository(db)
		sub, err := repo.GetByUserAndMeetup(ctx, "user-1", "meetup-1")
		require.NoError(t, err)
		require.Equal(t, "sub-1", sub.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE user_id = \$1 AND meetup_id = \$2`).
			WithArgs("user-1", "meetup-1").
			WillReturnError(sql.ErrNoRows)

		repo := NewSubscriptionRepository(db)
		_, err = repo.GetByUserAndMeetup(ctx, "user-1", "meetup-1")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSubscriptionRepository_ExistsByUserAndDate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		exists bool
	}{
		{"conflict at the same instant", true},
		{"no conflict", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`WHERE s.user_id = \$1 AND m.date = \$2`).
				WithArgs("user-1", date).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			repo := NewSubscriptionRepository(db)
			got, err := repo.ExistsByUserAndDate(ctx, "user-1", date)
			require.NoError(t, err)
			require.Equal(t, tt.exists, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriptionRepository_ListUpcomingByUser(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	date := time.Now().Add(48 * time.Hour)
	columns := append([]string{"s_id", "s_user_id", "s_meetup_id", "s_created_at"}, detailsColumns...)

	t.Run("returns subscriptions with meetup details", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE s.user_id = \$1 AND m.date > NOW\(\)\s+ORDER BY m.date ASC`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				"sub-1", "user-1", "meetup-1", created,
				"meetup-1", "Go Meetup", "Talks", "Downtown", date, nil, "organizer-1", created, created,
				"organizer-1", "Olivia", "olivia@example.com", created, created,
				nil, nil, nil, nil,
			))

		repo := NewSubscriptionRepository(db)
		subs, err := repo.ListUpcomingByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, subs, 1)
		require.Equal(t, "sub-1", subs[0].Subscription.ID)
		require.Equal(t, "Go Meetup", subs[0].Meetup.Meetup.Title)
		require.Equal(t, "Olivia", subs[0].Meetup.Owner.Name)
		require.False(t, subs[0].Meetup.Past)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is a non-nil slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE s.user_id = \$1 AND m.date > NOW\(\)`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(columns))

		repo := NewSubscriptionRepository(db)
		subs, err := repo.ListUpcomingByUser(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, subs)
		require.Empty(t, subs)
	})
}

func TestSubscriptionRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1`).
			WithArgs("sub-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSubscriptionRepository(db)
		require.NoError(t, repo.Delete(ctx, "sub-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSubscriptionRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
	})
}
