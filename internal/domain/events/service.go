package events

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/campuslane/server/internal/auth"
	"github.com/campuslane/server/internal/domain/ids"
	"github.com/campuslane/server/internal/sanitize"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

type CreateInput struct {
	Title       string
	Description string
	Image       string
	Location    string
	Date        string
	StartTime   string
	EndTime     string
	Category    string
}

// Create publishes a new event owned by the calling admin.
func (s *Service) Create(ctx context.Context, callerID, callerRole string, input CreateInput) (*Event, error) {
	if !auth.IsAdmin(callerRole) {
		return nil, ErrNotOwner
	}

	params, err := buildCreateParams(callerID, input)
	if err != nil {
		return nil, err
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint event id: %w", err)
	}
	params.ID = id

	return s.repo.Create(ctx, params)
}

func buildCreateParams(callerID string, input CreateInput) (CreateParams, error) {
	title := sanitize.Text(strings.TrimSpace(input.Title))
	location := sanitize.Text(strings.TrimSpace(input.Location))
	if title == "" || location == "" || strings.TrimSpace(input.Date) == "" {
		return CreateParams{}, FilterError{Message: "title, location, and date are required"}
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return CreateParams{}, err
	}

	params := CreateParams{
		Title:     title,
		Location:  location,
		Date:      date,
		CreatedBy: callerID,
	}
	if desc := sanitize.HTML(strings.TrimSpace(input.Description)); desc != "" {
		params.Description = &desc
	}
	if image := strings.TrimSpace(input.Image); image != "" {
		params.Image = &image
	}
	if start := strings.TrimSpace(input.StartTime); start != "" {
		params.StartTime = &start
	}
	if end := strings.TrimSpace(input.EndTime); end != "" {
		params.EndTime = &end
	}
	if category := normalizeCategory(input.Category); category != "" {
		params.Category = &category
	}
	return params, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*EventWithOrganizer, error) {
	return s.repo.GetWithOrganizer(ctx, id)
}

func (s *Service) List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error) {
	return s.repo.List(ctx, filters, pagination)
}

// ListMine returns the calling admin's own events, date ascending.
func (s *Service) ListMine(ctx context.Context, callerID string, pagination Pagination) (ListResult, error) {
	return s.repo.ListByOwner(ctx, callerID, pagination)
}

type UpdateInput struct {
	Title       *string
	Description *string
	Image       *string
	Location    *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Category    *string
}

// Update edits an event. Only the owning admin may edit (I4 analogue for CRUD).
func (s *Service) Update(ctx context.Context, callerID, callerRole, id string, input UpdateInput) (*Event, error) {
	if !auth.IsAdmin(callerRole) {
		return nil, ErrNotOwner
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != callerID {
		return nil, ErrNotOwner
	}

	params := UpdateParams{
		Image:     input.Image,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	if input.Title != nil {
		title := sanitize.Text(strings.TrimSpace(*input.Title))
		if title == "" {
			return nil, FilterError{Field: "title", Message: "must not be empty"}
		}
		params.Title = &title
	}
	if input.Description != nil {
		desc := sanitize.HTML(strings.TrimSpace(*input.Description))
		params.Description = &desc
	}
	if input.Location != nil {
		location := sanitize.Text(strings.TrimSpace(*input.Location))
		if location == "" {
			return nil, FilterError{Field: "location", Message: "must not be empty"}
		}
		params.Location = &location
	}
	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		params.Date = &date
	}
	if input.Category != nil {
		category := normalizeCategory(*input.Category)
		params.Category = &category
	}

	return s.repo.Update(ctx, id, params)
}

// Delete removes an event. Registrations cascade at the store.
func (s *Service) Delete(ctx context.Context, callerID, callerRole, id string) error {
	if !auth.IsAdmin(callerRole) {
		return ErrNotOwner
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedBy != callerID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}

func ParseFilters(values url.Values) (Filters, Pagination, error) {
	filters := Filters{
		Search:   strings.TrimSpace(values.Get("search")),
		Category: normalizeCategory(values.Get("category")),
	}

	pagination := Pagination{Page: 1, Limit: 10}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filters, pagination, FilterError{Field: "page", Message: "must be a positive number"}
		}
		pagination.Page = page
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			return filters, pagination, FilterError{Field: "limit", Message: "must be between 1 and 100"}
		}
		pagination.Limit = limit
	}

	return filters, pagination, nil
}

func normalizeCategory(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, FilterError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	return parsed, nil
}
