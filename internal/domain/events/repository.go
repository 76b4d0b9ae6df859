package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("event not found")
	ErrNotOwner = errors.New("event not owned by caller")
)

type Event struct {
	ID          string
	Title       string
	Description *string
	Image       *string
	Location    string
	Date        time.Time
	StartTime   *string
	EndTime     *string
	Category    *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Organizer is the admin projection embedded in public event listings.
type Organizer struct {
	ID    string
	Name  string
	Email string
}

type EventWithOrganizer struct {
	Event
	Organizer Organizer
}

type CreateParams struct {
	ID          string
	Title       string
	Description *string
	Image       *string
	Location    string
	Date        time.Time
	StartTime   *string
	EndTime     *string
	Category    *string
	CreatedBy   string
}

// UpdateParams carries mutable event fields; nil leaves the stored value alone.
type UpdateParams struct {
	Title       *string
	Description *string
	Image       *string
	Location    *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Category    *string
}

type Filters struct {
	Search   string
	Category string
}

type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit
}

type ListResult struct {
	Events []EventWithOrganizer
	Total  int
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	GetWithOrganizer(ctx context.Context, id string) (*EventWithOrganizer, error)
	List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error)
	ListByOwner(ctx context.Context, ownerID string, pagination Pagination) (ListResult, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Event, error)
	Delete(ctx context.Context, id string) error
}
