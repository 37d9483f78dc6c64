package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"meetapp/internal/domain"
)

type meetupRepository struct {
	DB *sql.DB
}

func NewMeetupRepository(db *sql.DB) domain.MeetupRepository {
	return &meetupRepository{
		DB: db,
	}
}

func (r *meetupRepository) Create(ctx context.Context, m *domain.Meetup) error {
	query := `
		INSERT INTO meetups (title, description, location, date, banner_id, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var bannerID sql.NullString
	if m.BannerID != nil {
		bannerID = sql.NullString{String: *m.BannerID, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		m.Title, m.Description, m.Location, m.Date, bannerID, m.OwnerID, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
}

func (r *meetupRepository) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	query := `
		SELECT id, title, description, location, date, banner_id, owner_id, created_at, updated_at
		FROM meetups
		WHERE id = $1
	`
	m := &domain.Meetup{}
	var bannerNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &bannerNull, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bannerNull.Valid {
		m.BannerID = &bannerNull.String
	}
	return m, nil
}

const meetupDetailsColumns = `
	m.id, m.title, m.description, m.location, m.date, m.banner_id, m.owner_id, m.created_at, m.updated_at,
	u.id, u.name, u.email, u.created_at, u.updated_at,
	f.id, f.path, f.url, f.created_at
`

func scanMeetupDetails(scanner interface{ Scan(dest ...any) error }) (*domain.MeetupWithDetails, error) {
	m := &domain.Meetup{}
	owner := &domain.User{}
	var bannerNull sql.NullString
	var fileID, filePath, fileURL sql.NullString
	var fileCreatedAt sql.NullTime
	err := scanner.Scan(
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
	details := &domain.MeetupWithDetails{
		Meetup: m,
		Owner:  owner,
		Past:   m.Past(),
	}
	if fileID.Valid {
		details.Banner = &domain.File{
			ID:        fileID.String,
			Path:      filePath.String,
			URL:       fileURL.String,
			CreatedAt: fileCreatedAt.Time,
		}
	}
	return details, nil
}

func (r *meetupRepository) GetWithDetails(ctx context.Context, id string) (*domain.MeetupWithDetails, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM meetups m
		JOIN users u ON u.id = m.owner_id
		LEFT JOIN files f ON f.id = m.banner_id
		WHERE m.id = $1
	`, meetupDetailsColumns)
	details, err := scanMeetupDetails(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return details, nil
}

func (r *meetupRepository) List(ctx context.Context, q domain.MeetupQuery, params domain.PaginationParams) ([]*domain.MeetupWithDetails, error) {
	where := []string{}
	args := []any{}
	n := 1
	if q.DateFrom != nil && q.DateTo != nil {
		where = append(where, fmt.Sprintf("m.date BETWEEN $%d AND $%d", n, n+1))
		args = append(args, *q.DateFrom, *q.DateTo)
		n += 2
	}
	if q.OwnerID != "" {
		where = append(where, fmt.Sprintf("m.owner_id = $%d", n))
		args = append(args, q.OwnerID)
		n++
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM meetups m
		JOIN users u ON u.id = m.owner_id
		LEFT JOIN files f ON f.id = m.banner_id
		%s
		ORDER BY m.date ASC
		LIMIT $%d OFFSET $%d
	`, meetupDetailsColumns, whereClause, n, n+1)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	meetups := make([]*domain.MeetupWithDetails, 0)
	for rows.Next() {
		details, err := scanMeetupDetails(rows)
		if err != nil {
			return nil, err
		}
		meetups = append(meetups, details)
	}
	return meetups, rows.Err()
}

func (r *meetupRepository) Update(ctx context.Context, id string, update domain.MeetupUpdate) (*domain.Meetup, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *update.Title)
		n++
	}
	if update.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *update.Description)
		n++
	}
	if update.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *update.Location)
		n++
	}
	if update.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *update.Date)
		n++
	}
	if update.BannerID != nil {
		setClauses = append(setClauses, fmt.Sprintf("banner_id = $%d", n))
		args = append(args, *update.BannerID)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE meetups SET %s
		WHERE id = $%d
		RETURNING id, title, description, location, date, banner_id, owner_id, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	m := &domain.Meetup{}
	var bannerNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &bannerNull, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bannerNull.Valid {
		m.BannerID = &bannerNull.String
	}
	return m, nil
}

func (r *meetupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meetups WHERE id = $1`
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

func (r *meetupRepository) ExistsByOwner(ctx context.Context, ownerID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM meetups WHERE owner_id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
