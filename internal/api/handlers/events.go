package handlers

import (
	"net/http"
	"strings"

	"github.com/campuslane/server/internal/api/apierr"
	"github.com/campuslane/server/internal/api/middleware"
	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/ids"
)

// EventHandler serves the public catalog and the admin-side event CRUD.
type EventHandler struct {
	events *events.Service
	env    string
}

func NewEventHandler(eventsService *events.Service, env string) *EventHandler {
	return &EventHandler{events: eventsService, env: env}
}

type listResponse struct {
	Events []eventView `json:"events"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
	Limit  int         `json:"limit"`
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, pagination, err := events.ParseFilters(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	result, err := h.events.List(r.Context(), filters, pagination)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusOK, renderList(result, pagination))
}

// ListMine returns the calling admin's own events.
func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	_, pagination, err := events.ParseFilters(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	result, err := h.events.ListMine(r.Context(), identity.UserID, pagination)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusOK, renderList(result, pagination))
}

func renderList(result events.ListResult, pagination events.Pagination) listResponse {
	views := make([]eventView, 0, len(result.Events))
	for i := range result.Events {
		views = append(views, renderEventWithOrganizer(&result.Events[i]))
	}
	return listResponse{Events: views, Total: result.Total, Page: pagination.Page, Limit: pagination.Limit}
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireULIDParam(w, r, "id", h.env)
	if !ok {
		return
	}

	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusOK, renderEventWithOrganizer(event))
}

type createEventRequest struct {
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	Image       string `json:"image" validate:"omitempty,max=2048"`
	Location    string `json:"location" validate:"required,max=300"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"startTime" validate:"omitempty,max=20"`
	EndTime     string `json:"endTime" validate:"omitempty,max=20"`
	Category    string `json:"category" validate:"omitempty,max=60"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	var req createEventRequest
	if !decodeJSON(w, r, &req, h.env) {
		return
	}

	event, err := h.events.Create(r.Context(), identity.UserID, string(identity.Role), events.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Location:    req.Location,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
	})
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusCreated, renderEvent(event))
}

type updateEventRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Image       *string `json:"image" validate:"omitempty,max=2048"`
	Location    *string `json:"location" validate:"omitempty,max=300"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime" validate:"omitempty,max=20"`
	EndTime     *string `json:"endTime" validate:"omitempty,max=20"`
	Category    *string `json:"category" validate:"omitempty,max=60"`
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	id, ok := requireULIDParam(w, r, "id", h.env)
	if !ok {
		return
	}

	var req updateEventRequest
	if !decodeJSON(w, r, &req, h.env) {
		return
	}

	event, err := h.events.Update(r.Context(), identity.UserID, string(identity.Role), id, events.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Location:    req.Location,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
	})
	if err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	writeJSON(w, r, http.StatusOK, renderEvent(event))
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", nil, h.env)
		return
	}

	id, ok := requireULIDParam(w, r, "id", h.env)
	if !ok {
		return
	}

	if err := h.events.Delete(r.Context(), identity.UserID, string(identity.Role), id); err != nil {
		writeDomainError(w, r, err, h.env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireULIDParam extracts and validates a ULID path parameter, writing the
// error envelope itself on failure.
func requireULIDParam(w http.ResponseWriter, r *http.Request, name, env string) (string, bool) {
	value := strings.TrimSpace(pathParam(r, name))
	if value == "" {
		apierr.Write(w, r, apierr.KindInvalidArgument, "missing "+name, nil, env,
			apierr.WithFields(map[string]string{name: "required"}))
		return "", false
	}
	if err := ids.ValidateULID(value); err != nil {
		apierr.Write(w, r, apierr.KindInvalidArgument, "invalid "+name, err, env,
			apierr.WithFields(map[string]string{name: "must be a ULID"}))
		return "", false
	}
	return value, true
}
