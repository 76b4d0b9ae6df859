package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslane/server/internal/domain/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ users.Repository = (*UserRepository)(nil)

const userColumns = `id, name, email, password_hash, role, phone, image, roll,
       department, year, skills, about, designation, office, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (id, name, email, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+userColumns,
		params.ID, params.Name, params.Email, params.PasswordHash, params.Role,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, users.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, params users.UpdateParams) (*users.User, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE users
   SET name        = COALESCE($2, name),
       phone       = COALESCE($3, phone),
       image       = COALESCE($4, image),
       roll        = COALESCE($5, roll),
       department  = COALESCE($6, department),
       year        = COALESCE($7, year),
       skills      = COALESCE($8, skills),
       about       = COALESCE($9, about),
       designation = COALESCE($10, designation),
       office      = COALESCE($11, office),
       updated_at  = now()
 WHERE id = $1
RETURNING `+userColumns,
		id,
		params.Name,
		params.Phone,
		params.Image,
		params.Roll,
		params.Department,
		params.Year,
		params.Skills,
		params.About,
		params.Designation,
		params.Office,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*users.User, error) {
	var user users.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Phone,
		&user.Image,
		&user.Roll,
		&user.Department,
		&user.Year,
		&user.Skills,
		&user.About,
		&user.Designation,
		&user.Office,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
