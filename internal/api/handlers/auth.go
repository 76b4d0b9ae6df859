package handlers

import (
	"net/http"

	"github.com/campuslane/server/internal/domain/users"
)

// AuthHandler serves signup, login, and logout.
type AuthHandler struct {
	users *users.Service
	env   string
}

func NewAuthHandler(usersService *users.Service, env string) *AuthHandler {
	return &AuthHandler{users: usersService, env: env}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required"`
}

type authResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req, h.env) {
		return
	}

	user, token, err := h.users.Signup(r.Context(), users.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusCreated, authResponse{User: renderUser(user), Token: token})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req, h.env) {
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusOK, authResponse{User: renderUser(user), Token: token})
}

// Logout is a no-op on the server: tokens are stateless and simply discarded
// by the client.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}
