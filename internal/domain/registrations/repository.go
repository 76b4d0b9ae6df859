package registrations

import (
	"context"
	"errors"
	"time"

	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/users"
)

var (
	ErrNotFound          = errors.New("registration not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotOwner          = errors.New("registration not owned by caller")
)

// StatusRegistered is the only status ever persisted. Withdrawal deletes the
// row; there is no soft-delete transition.
const StatusRegistered = "REGISTERED"

type Registration struct {
	ID        string
	EventID   string
	UserID    string
	Status    string
	CreatedAt time.Time
}

// RegistrationWithEvent joins a registration with its event for student-facing
// views.
type RegistrationWithEvent struct {
	Registration
	Event events.Event
}

type CreateParams struct {
	ID      string
	EventID string
	UserID  string
}

// EventCount annotates an event with its live registration count, computed at
// query time.
type EventCount struct {
	Event events.Event
	Count int
}

type Repository interface {
	// Create inserts a new REGISTERED row. The store's uniqueness constraint
	// on (event_id, user_id) is the source of truth for duplicate detection;
	// implementations return ErrAlreadyRegistered on a constraint violation.
	Create(ctx context.Context, params CreateParams) (*Registration, error)
	GetByID(ctx context.Context, id string) (*Registration, error)
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]RegistrationWithEvent, error)
	// ListUsersByEvent returns the registered students' public profiles in
	// creation order ascending.
	ListUsersByEvent(ctx context.Context, eventID string) ([]users.PublicProfile, error)
	// CountsByOwner returns every event owned by ownerID with its live
	// registration count.
	CountsByOwner(ctx context.Context, ownerID string) ([]EventCount, error)
}
