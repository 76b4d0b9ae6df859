package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslane/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
)

var _ events.Repository = (*EventRepository)(nil)

const eventColumns = `id, title, description, image, location, date, start_time,
       end_time, category, created_by, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO events (id, title, description, image, location, date, start_time, end_time, category, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING `+eventColumns,
		params.ID,
		params.Title,
		params.Description,
		params.Image,
		params.Location,
		params.Date,
		params.StartTime,
		params.EndTime,
		params.Category,
		params.CreatedBy,
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) GetWithOrganizer(ctx context.Context, id string) (*events.EventWithOrganizer, error) {
	row := r.pool.QueryRow(ctx, `
SELECT e.id, e.title, e.description, e.image, e.location, e.date, e.start_time,
       e.end_time, e.category, e.created_by, e.created_at, e.updated_at,
       u.id, u.name, u.email
  FROM events e
  JOIN users u ON u.id = e.created_by
 WHERE e.id = $1`, id)

	item, err := scanEventWithOrganizer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event with organizer: %w", err)
	}
	return item, nil
}

func (r *EventRepository) List(ctx context.Context, filters events.Filters, pagination events.Pagination) (events.ListResult, error) {
	limit := pagination.Limit
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, `
SELECT e.id, e.title, e.description, e.image, e.location, e.date, e.start_time,
       e.end_time, e.category, e.created_by, e.created_at, e.updated_at,
       u.id, u.name, u.email
  FROM events e
  JOIN users u ON u.id = e.created_by
 WHERE ($1 = '' OR e.title ILIKE '%' || $1 || '%')
   AND ($2 = '' OR e.category = $2)
 ORDER BY e.date ASC, e.id ASC
 LIMIT $3 OFFSET $4`,
		filters.Search,
		filters.Category,
		limit,
		pagination.Offset(),
	)
	if err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.EventWithOrganizer, 0, limit)
	for rows.Next() {
		item, err := scanEventWithOrganizer(rows)
		if err != nil {
			return events.ListResult{}, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}

	var total int
	err = r.pool.QueryRow(ctx, `
SELECT count(*) FROM events e
 WHERE ($1 = '' OR e.title ILIKE '%' || $1 || '%')
   AND ($2 = '' OR e.category = $2)`,
		filters.Search,
		filters.Category,
	).Scan(&total)
	if err != nil {
		return events.ListResult{}, fmt.Errorf("count events: %w", err)
	}

	return events.ListResult{Events: items, Total: total}, nil
}

func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string, pagination events.Pagination) (events.ListResult, error) {
	limit := pagination.Limit
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, `
SELECT e.id, e.title, e.description, e.image, e.location, e.date, e.start_time,
       e.end_time, e.category, e.created_by, e.created_at, e.updated_at,
       u.id, u.name, u.email
  FROM events e
  JOIN users u ON u.id = e.created_by
 WHERE e.created_by = $1
 ORDER BY e.date ASC, e.id ASC
 LIMIT $2 OFFSET $3`,
		ownerID,
		limit,
		pagination.Offset(),
	)
	if err != nil {
		return events.ListResult{}, fmt.Errorf("list events by owner: %w", err)
	}
	defer rows.Close()

	items := make([]events.EventWithOrganizer, 0, limit)
	for rows.Next() {
		item, err := scanEventWithOrganizer(rows)
		if err != nil {
			return events.ListResult{}, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return events.ListResult{}, fmt.Errorf("list events by owner: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events WHERE created_by = $1`, ownerID).Scan(&total); err != nil {
		return events.ListResult{}, fmt.Errorf("count events by owner: %w", err)
	}

	return events.ListResult{Events: items, Total: total}, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE events
   SET title       = COALESCE($2, title),
       description = COALESCE($3, description),
       image       = COALESCE($4, image),
       location    = COALESCE($5, location),
       date        = COALESCE($6, date),
       start_time  = COALESCE($7, start_time),
       end_time    = COALESCE($8, end_time),
       category    = COALESCE($9, category),
       updated_at  = now()
 WHERE id = $1
RETURNING `+eventColumns,
		id,
		params.Title,
		params.Description,
		params.Image,
		params.Location,
		params.Date,
		params.StartTime,
		params.EndTime,
		params.Category,
	)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var event events.Event
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Image,
		&event.Location,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&event.Category,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func scanEventWithOrganizer(row pgx.Row) (*events.EventWithOrganizer, error) {
	var item events.EventWithOrganizer
	if err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Image,
		&item.Location,
		&item.Date,
		&item.StartTime,
		&item.EndTime,
		&item.Category,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.Organizer.ID,
		&item.Organizer.Name,
		&item.Organizer.Email,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
