package registrations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campuslane/server/internal/auth"
	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/ids"
	"github.com/campuslane/server/internal/domain/users"
)

// Service owns the registration lifecycle: at most one live registration per
// (event, student), withdrawal only by the owning student, and the admin-facing
// roster and count views.
type Service struct {
	repo   Repository
	events events.Repository
}

func NewService(repo Repository, eventsRepo events.Repository) *Service {
	return &Service{repo: repo, events: eventsRepo}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ErrStudentsOnly is returned when a non-student attempts to register.
var ErrStudentsOnly = errors.New("only students can register for events")

// ErrAdminsOnly is returned when a non-admin requests an event roster.
var ErrAdminsOnly = errors.New("only admins can view registrations")

// Register creates a registration for the calling student. The lookup of an
// existing row is a pre-flight courtesy check; the store's unique constraint
// on (event_id, user_id) decides the winner when duplicates race.
func (s *Service) Register(ctx context.Context, callerID, callerRole, eventID string) (*RegistrationWithEvent, error) {
	if !auth.IsStudent(callerRole) {
		return nil, ErrStudentsOnly
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, ValidationError{Field: "eventId", Message: "required"}
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEventAndUser(ctx, eventID, callerID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint registration id: %w", err)
	}

	created, err := s.repo.Create(ctx, CreateParams{ID: id, EventID: eventID, UserID: callerID})
	if err != nil {
		return nil, err
	}

	return &RegistrationWithEvent{Registration: *created, Event: *event}, nil
}

// Withdraw permanently deletes the caller's registration. A later
// re-registration is a brand-new record with a new id and timestamp.
func (s *Service) Withdraw(ctx context.Context, callerID, registrationID string) error {
	registration, err := s.repo.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if registration.UserID != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, registrationID)
}

// ListMine returns the caller's live registrations, most recent first, each
// joined with its event.
func (s *Service) ListMine(ctx context.Context, callerID string) ([]RegistrationWithEvent, error) {
	return s.repo.ListByUser(ctx, callerID)
}

// Roster is the admin view of one event's registered students.
type Roster struct {
	Event    events.Event
	Students []users.PublicProfile
}

// ListForEvent returns the roster for an event owned by the calling admin.
// An absent event and an event owned by another admin are both reported as
// events.ErrNotOwner; callers cannot distinguish the two cases.
func (s *Service) ListForEvent(ctx context.Context, callerID, callerRole, eventID string) (*Roster, error) {
	if !auth.IsAdmin(callerRole) {
		return nil, ErrAdminsOnly
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, ValidationError{Field: "eventId", Message: "required"}
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			return nil, events.ErrNotOwner
		}
		return nil, err
	}
	if event.CreatedBy != callerID {
		return nil, events.ErrNotOwner
	}

	students, err := s.repo.ListUsersByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &Roster{Event: *event, Students: students}, nil
}

// ListMyEventsWithCounts returns every event owned by the caller annotated
// with its live registration count.
func (s *Service) ListMyEventsWithCounts(ctx context.Context, callerID string) ([]EventCount, error) {
	return s.repo.CountsByOwner(ctx, callerID)
}
