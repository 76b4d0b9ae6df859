package handlers

import (
	"net/http"

	"github.com/campuslane/server/internal/api/apierr"
	"github.com/campuslane/server/internal/api/middleware"
	"github.com/campuslane/server/internal/domain/users"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	users *users.Service
	env   string
}

func NewUserHandler(usersService *users.Service, env string) *UserHandler {
	return &UserHandler{users: usersService, env: env}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	user, err := h.users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusOK, renderUser(user))
}

type updateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,max=40"`
	Image       *string `json:"image" validate:"omitempty,max=2048"`
	Roll        *string `json:"roll" validate:"omitempty,max=60"`
	Department  *string `json:"department" validate:"omitempty,max=120"`
	Year        *string `json:"year" validate:"omitempty,max=20"`
	Skills      *string `json:"skills" validate:"omitempty,max=1000"`
	About       *string `json:"about" validate:"omitempty,max=4000"`
	Designation *string `json:"designation" validate:"omitempty,max=120"`
	Office      *string `json:"office" validate:"omitempty,max=120"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req, h.env) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), identity.UserID, users.UpdateParams{
		Name:        req.Name,
		Phone:       req.Phone,
		Image:       req.Image,
		Roll:        req.Roll,
		Department:  req.Department,
		Year:        req.Year,
		Skills:      req.Skills,
		About:       req.About,
		Designation: req.Designation,
		Office:      req.Office,
	})
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusOK, renderUser(user))
}
