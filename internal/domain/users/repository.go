package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        *string
	Image        *string
	Roll         *string
	Department   *string
	Year         *string
	Skills       *string
	About        *string
	Designation  *string
	Office       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the projection of a user exposed to other callers,
// e.g. students on an event roster.
type PublicProfile struct {
	ID    string
	Name  string
	Roll  *string
	Phone *string
	Email string
}

type CreateParams struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// UpdateParams carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type UpdateParams struct {
	Name        *string
	Phone       *string
	Image       *string
	Roll        *string
	Department  *string
	Year        *string
	Skills      *string
	About       *string
	Designation *string
	Office      *string
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id string, params UpdateParams) (*User, error)
}
