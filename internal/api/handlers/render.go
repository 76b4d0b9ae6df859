package handlers

import (
	"time"

	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/registrations"
	"github.com/campuslane/server/internal/domain/users"
)

const dateLayout = "2006-01-02"

type userView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Phone       *string   `json:"phone,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Roll        *string   `json:"roll,omitempty"`
	Department  *string   `json:"department,omitempty"`
	Year        *string   `json:"year,omitempty"`
	Skills      *string   `json:"skills,omitempty"`
	About       *string   `json:"about,omitempty"`
	Designation *string   `json:"designation,omitempty"`
	Office      *string   `json:"office,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func renderUser(u *users.User) userView {
	return userView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Phone:       u.Phone,
		Image:       u.Image,
		Roll:        u.Roll,
		Department:  u.Department,
		Year:        u.Year,
		Skills:      u.Skills,
		About:       u.About,
		Designation: u.Designation,
		Office:      u.Office,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type profileView struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Roll  *string `json:"roll,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email string  `json:"email"`
}

func renderProfile(p users.PublicProfile) profileView {
	return profileView{ID: p.ID, Name: p.Name, Roll: p.Roll, Phone: p.Phone, Email: p.Email}
}

type organizerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type eventView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Image       *string        `json:"image,omitempty"`
	Location    string         `json:"location"`
	Date        string         `json:"date"`
	StartTime   *string        `json:"startTime,omitempty"`
	EndTime     *string        `json:"endTime,omitempty"`
	Category    *string        `json:"category,omitempty"`
	CreatedBy   string         `json:"createdBy"`
	Organizer   *organizerView `json:"organizer,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func renderEvent(e *events.Event) eventView {
	return eventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Image:       e.Image,
		Location:    e.Location,
		Date:        e.Date.Format(dateLayout),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Category:    e.Category,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func renderEventWithOrganizer(e *events.EventWithOrganizer) eventView {
	view := renderEvent(&e.Event)
	view.Organizer = &organizerView{ID: e.Organizer.ID, Name: e.Organizer.Name, Email: e.Organizer.Email}
	return view
}

type registrationView struct {
	ID        string     `json:"id"`
	EventID   string     `json:"eventId"`
	UserID    string     `json:"userId"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	Event     *eventView `json:"event,omitempty"`
}

func renderRegistration(reg *registrations.RegistrationWithEvent) registrationView {
	event := renderEvent(&reg.Event)
	return registrationView{
		ID:        reg.ID,
		EventID:   reg.EventID,
		UserID:    reg.UserID,
		Status:    reg.Status,
		CreatedAt: reg.CreatedAt,
		Event:     &event,
	}
}

type eventCountView struct {
	Event eventView `json:"event"`
	Count int       `json:"registrationCount"`
}

func renderEventCount(ec registrations.EventCount) eventCountView {
	return eventCountView{Event: renderEvent(&ec.Event), Count: ec.Count}
}
