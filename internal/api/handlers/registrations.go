package handlers

import (
	"errors"
	"net/http"

	"github.com/campuslane/server/internal/api/apierr"
	"github.com/campuslane/server/internal/api/middleware"
	"github.com/campuslane/server/internal/domain/registrations"
	"github.com/campuslane/server/internal/metrics"
)

// RegistrationHandler serves the registration ledger: register, withdraw,
// the student's own list, and the admin roster and summary views.
type RegistrationHandler struct {
	registrations *registrations.Service
	env           string
}

func NewRegistrationHandler(service *registrations.Service, env string) *RegistrationHandler {
	return &RegistrationHandler{registrations: service, env: env}
}

type createRegistrationRequest struct {
	EventID string `json:"eventId" validate:"required"`
}

type registrationResponse struct {
	Message      string           `json:"message"`
	Registration registrationView `json:"registration"`
}

func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	var req createRegistrationRequest
	if !decodeJSON(w, r, &req, h.env) {
		return
	}

	created, err := h.registrations.Register(r.Context(), identity.UserID, string(identity.Role), req.EventID)
	if err != nil {
		if errors.Is(err, registrations.ErrAlreadyRegistered) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		writeDomainError(w, r, err, h.env)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	writeJSON(w, r, http.StatusCreated, registrationResponse{
		Message:      "Registration successful",
		Registration: renderRegistration(created),
	})
}

func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	id, ok := requireULIDParam(w, r, "id", h.env)
	if !ok {
		return
	}

	if err := h.registrations.Withdraw(r.Context(), identity.UserID, id); err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("withdrawn").Inc()
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Successfully unregistered"})
}

// Mine lists the caller's live registrations, most recent first.
func (h *RegistrationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	mine, err := h.registrations.ListMine(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	views := make([]registrationView, 0, len(mine))
	for i := range mine {
		views = append(views, renderRegistration(&mine[i]))
	}
	writeJSON(w, r, http.StatusOK, map[string][]registrationView{"registrations": views})
}

type rosterResponse struct {
	Event    eventView     `json:"event"`
	Students []profileView `json:"students"`
}

// Roster returns the registered students for one of the calling admin's
// events, in registration order.
func (h *RegistrationHandler) Roster(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	eventID, ok := requireULIDParam(w, r, "id", h.env)
	if !ok {
		return
	}

	roster, err := h.registrations.ListForEvent(r.Context(), identity.UserID, string(identity.Role), eventID)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	students := make([]profileView, 0, len(roster.Students))
	for _, student := range roster.Students {
		students = append(students, renderProfile(student))
	}
	writeJSON(w, r, http.StatusOK, rosterResponse{Event: renderEvent(&roster.Event), Students: students})
}

// Summary lists every event the calling admin owns with its live
// registration count.
func (h *RegistrationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	counts, err := h.registrations.ListMyEventsWithCounts(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	views := make([]eventCountView, 0, len(counts))
	for _, count := range counts {
		views = append(views, renderEventCount(count))
	}
	writeJSON(w, r, http.StatusOK, map[string][]eventCountView{"events": views})
}
