package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campuslane/server/internal/auth"
	"github.com/campuslane/server/internal/domain/ids"
)

type Service struct {
	repo Repository
	jwt  *auth.JWTManager
}

func NewService(repo Repository, jwt *auth.JWTManager) *Service {
	return &Service{repo: repo, jwt: jwt}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
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

// Signup creates an account and returns it with a signed token. Email is
// stored lowercased and must be unique; the role must be one of the known
// role tokens.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*User, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, "", ValidationError{Field: "name", Message: "required"}
	}
	if email == "" {
		return nil, "", ValidationError{Field: "email", Message: "required"}
	}
	if len(input.Password) < 8 {
		return nil, "", ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	role := auth.NormalizeRole(input.Role)
	if role == "" {
		return nil, "", ValidationError{Field: "role", Message: "use ADMIN or STUDENT"}
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, "", fmt.Errorf("mint user id: %w", err)
	}

	user, err := s.repo.Create(ctx, CreateParams{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(role),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies a partial update to the caller's own profile.
// Email, role, and id are immutable.
func (s *Service) UpdateProfile(ctx context.Context, callerID string, params UpdateParams) (*User, error) {
	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		if trimmed == "" {
			return nil, ValidationError{Field: "name", Message: "must not be empty"}
		}
		params.Name = &trimmed
	}
	return s.repo.Update(ctx, callerID, params)
}
