package postgres

import (
	"fmt"

	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/registrations"
	"github.com/campuslane/server/internal/domain/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements storage.Repository with a PostgreSQL backend.
type Repository struct {
	pool *pgxpool.Pool

	users         *UserRepository
	events        *EventRepository
	registrations *RegistrationRepository
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{
		pool:          pool,
		users:         &UserRepository{pool: pool},
		events:        &EventRepository{pool: pool},
		registrations: &RegistrationRepository{pool: pool},
	}, nil
}

func (r *Repository) Users() users.Repository {
	return r.users
}

func (r *Repository) Events() events.Repository {
	return r.events
}

func (r *Repository) Registrations() registrations.Repository {
	return r.registrations
}

type UserRepository struct {
	pool *pgxpool.Pool
}

type EventRepository struct {
	pool *pgxpool.Pool
}

type RegistrationRepository struct {
	pool *pgxpool.Pool
}
