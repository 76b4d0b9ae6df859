package postgres

import (
	"context"
	"testing"

	"github.com/campuslane/server/internal/domain/users"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndLookup(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	created, err := repo.Users().Create(ctx, users.CreateParams{
		ID:           ulid.Make().String(),
		Name:         "Priya Shah",
		Email:        "priya@campus.edu",
		PasswordHash: "hash",
		Role:         "STUDENT",
	})
	require.NoError(t, err)
	require.Nil(t, created.Phone)

	byEmail, err := repo.Users().GetByEmail(ctx, "priya@campus.edu")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = repo.Users().GetByEmail(ctx, "nobody@campus.edu")
	require.ErrorIs(t, err, users.ErrNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	params := users.CreateParams{
		ID:           ulid.Make().String(),
		Name:         "Priya Shah",
		Email:        "priya@campus.edu",
		PasswordHash: "hash",
		Role:         "STUDENT",
	}
	_, err = repo.Users().Create(ctx, params)
	require.NoError(t, err)

	params.ID = ulid.Make().String()
	_, err = repo.Users().Create(ctx, params)
	require.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestUserPartialUpdate(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo, err := NewRepository(pool)
	require.NoError(t, err)

	created, err := repo.Users().Create(ctx, users.CreateParams{
		ID:           ulid.Make().String(),
		Name:         "Priya Shah",
		Email:        "priya@campus.edu",
		PasswordHash: "hash",
		Role:         "STUDENT",
	})
	require.NoError(t, err)

	phone := "555-0101"
	roll := "CS-2026-041"
	updated, err := repo.Users().Update(ctx, created.ID, users.UpdateParams{
		Phone: &phone,
		Roll:  &roll,
	})
	require.NoError(t, err)
	require.Equal(t, "Priya Shah", updated.Name)
	require.Equal(t, &phone, updated.Phone)
	require.Equal(t, &roll, updated.Roll)

	name := "Priya S."
	updated, err = repo.Users().Update(ctx, created.ID, users.UpdateParams{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Priya S.", updated.Name)
	require.Equal(t, &phone, updated.Phone)
}
