package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"meetapp/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type subscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{
		DB: db,
	}
}

// Create inserts the subscription. The subscriptions table carries a unique
// constraint on (user_id, meetup_id); a violation maps to
// domain.ErrDuplicateSubscription so concurrent subscribes cannot yield a
// second row.
func (r *subscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, meetup_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.UserID, s.MeetupID, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateSubscription
		}
		return err
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	query := `
		SELECT id, user_id, meetup_id, created_at
		FROM subscriptions
		WHERE id = $1
	`
	s := &domain.Subscription{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.MeetupID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *subscriptionRepository) GetByUserAndMeetup(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	query := `
		SELECT id, user_id, meetup_id, created_at
		FROM subscriptions
		WHERE user_id = $1 AND meetup_id = $2
	`
	s := &domain.Subscription{}
	err := r.DB.QueryRowContext(ctx, query, userID, meetupID).Scan(&s.ID, &s.UserID, &s.MeetupID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *subscriptionRepository) ExistsByUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM subscriptions s
			JOIN meetups m ON m.id = s.meetup_id
			WHERE s.user_id = $1 AND m.date = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *subscriptionRepository) ListUpcomingByUser(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.user_id, s.meetup_id, s.created_at, %s
		FROM subscriptions s
		JOIN meetups m ON m.id = s.meetup_id
		JOIN users u ON u.id = m.owner_id
		LEFT JOIN files f ON f.id = m.banner_id
		WHERE s.user_id = $1 AND m.date > NOW()
		ORDER BY m.date ASC
	`, meetupDetailsColumns)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subs := make([]*domain.SubscriptionWithMeetup, 0)
	for rows.Next() {
		s := &domain.Subscription{}
		m := &domain.Meetup{}
		owner := &domain.User{}
		var bannerNull sql.NullString
		var fileID, filePath, fileURL sql.NullString
		var fileCreatedAt sql.NullTime
		err := rows.Scan(
			&s.ID, &s.UserID, &s.MeetupID, &s.CreatedAt,
			&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &bannerNull, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
			&owner.ID, &owner.Name, &owner.Email, &owner.CreatedAt, &owner.UpdatedAt,
			&fileID, &filePath, &fileURL, &fileCreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if bannerNull.Valid {
			m.BannerID = &bannerNull.String
		}
		details := &domain.MeetupWithDetails{Meetup: m, Owner: owner, Past: m.Past()}
		if fileID.Valid {
			details.Banner = &domain.File{
				ID:        fileID.String,
				Path:      filePath.String,
				URL:       fileURL.String,
				CreatedAt: fileCreatedAt.Time,
			}
		}
		subs = append(subs, &domain.SubscriptionWithMeetup{Subscription: s, Meetup: details})
	}
	return subs, rows.Err()
}

func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM subscriptions WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
