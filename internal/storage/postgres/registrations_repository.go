package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslane/server/internal/domain/registrations"
	"github.com/campuslane/server/internal/domain/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ registrations.Repository = (*RegistrationRepository)(nil)

// uniqueViolation is the Postgres error code raised when the unique index on
// (event_id, user_id) rejects a duplicate insert. That index, not the
// service's pre-flight lookup, is what upholds the one-registration invariant
// under concurrent duplicates.
const uniqueViolation = "23505"

func (r *RegistrationRepository) Create(ctx context.Context, params registrations.CreateParams) (*registrations.Registration, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO registrations (id, event_id, user_id, status)
VALUES ($1, $2, $3, $4)
RETURNING id, event_id, user_id, status, created_at`,
		params.ID, params.EventID, params.UserID, registrations.StatusRegistered,
	)

	registration, err := scanRegistration(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, registrations.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return registration, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*registrations.Registration, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, event_id, user_id, status, created_at
  FROM registrations
 WHERE id = $1`, id)

	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registrations.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return registration, nil
}

func (r *RegistrationRepository) FindByEventAndUser(ctx context.Context, eventID, userID string) (*registrations.Registration, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, event_id, user_id, status, created_at
  FROM registrations
 WHERE event_id = $1 AND user_id = $2`, eventID, userID)

	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registrations.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return registration, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return registrations.ErrNotFound
	}
	return nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]registrations.RegistrationWithEvent, error) {
	rows, err := r.pool.Query(ctx, `
SELECT r.id, r.event_id, r.user_id, r.status, r.created_at,
       e.id, e.title, e.description, e.image, e.location, e.date, e.start_time,
       e.end_time, e.category, e.created_by, e.created_at, e.updated_at
  FROM registrations r
  JOIN events e ON e.id = r.event_id
 WHERE r.user_id = $1 AND r.status = $2
 ORDER BY r.created_at DESC, r.id DESC`,
		userID, registrations.StatusRegistered,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", err)
	}
	defer rows.Close()

	var items []registrations.RegistrationWithEvent
	for rows.Next() {
		var item registrations.RegistrationWithEvent
		if err := rows.Scan(
			&item.ID,
			&item.EventID,
			&item.UserID,
			&item.Status,
			&item.CreatedAt,
			&item.Event.ID,
			&item.Event.Title,
			&item.Event.Description,
			&item.Event.Image,
			&item.Event.Location,
			&item.Event.Date,
			&item.Event.StartTime,
			&item.Event.EndTime,
			&item.Event.Category,
			&item.Event.CreatedBy,
			&item.Event.CreatedAt,
			&item.Event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", err)
	}
	return items, nil
}

func (r *RegistrationRepository) ListUsersByEvent(ctx context.Context, eventID string) ([]users.PublicProfile, error) {
	rows, err := r.pool.Query(ctx, `
SELECT u.id, u.name, u.roll, u.phone, u.email
  FROM registrations r
  JOIN users u ON u.id = r.user_id
 WHERE r.event_id = $1 AND r.status = $2
 ORDER BY r.created_at ASC, r.id ASC`,
		eventID, registrations.StatusRegistered,
	)
	if err != nil {
		return nil, fmt.Errorf("list users by event: %w", err)
	}
	defer rows.Close()

	var profiles []users.PublicProfile
	for rows.Next() {
		var profile users.PublicProfile
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.Roll, &profile.Phone, &profile.Email); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users by event: %w", err)
	}
	return profiles, nil
}

func (r *RegistrationRepository) CountsByOwner(ctx context.Context, ownerID string) ([]registrations.EventCount, error) {
	rows, err := r.pool.Query(ctx, `
SELECT e.id, e.title, e.description, e.image, e.location, e.date, e.start_time,
       e.end_time, e.category, e.created_by, e.created_at, e.updated_at,
       count(r.id)
  FROM events e
  LEFT JOIN registrations r ON r.event_id = e.id AND r.status = $2
 WHERE e.created_by = $1
 GROUP BY e.id
 ORDER BY e.date ASC, e.id ASC`,
		ownerID, registrations.StatusRegistered,
	)
	if err != nil {
		return nil, fmt.Errorf("count registrations by owner: %w", err)
	}
	defer rows.Close()

	var items []registrations.EventCount
	for rows.Next() {
		var item registrations.EventCount
		if err := rows.Scan(
			&item.Event.ID,
			&item.Event.Title,
			&item.Event.Description,
			&item.Event.Image,
			&item.Event.Location,
			&item.Event.Date,
			&item.Event.StartTime,
			&item.Event.EndTime,
			&item.Event.Category,
			&item.Event.CreatedBy,
			&item.Event.CreatedAt,
			&item.Event.UpdatedAt,
			&item.Count,
		); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count registrations by owner: %w", err)
	}
	return items, nil
}

func scanRegistration(row pgx.Row) (*registrations.Registration, error) {
	var registration registrations.Registration
	if err := row.Scan(
		&registration.ID,
		&registration.EventID,
		&registration.UserID,
		&registration.Status,
		&registration.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &registration, nil
}
