package storage

import (
	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/registrations"
	"github.com/campuslane/server/internal/domain/users"
)

// Repository aggregates the per-domain repositories backed by one store.
type Repository interface {
	Users() users.Repository
	Events() events.Repository
	Registrations() registrations.Repository
}
