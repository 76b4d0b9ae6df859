package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Handlers behind RequireAuth still verify the identity is present, so a
// route wired without the middleware fails closed instead of acting as an
// anonymous caller.
func TestHandlersRejectMissingIdentity(t *testing.T) {
	registrationHandler := NewRegistrationHandler(nil, "test")
	eventHandler := NewEventHandler(nil, "test")
	userHandler := NewUserHandler(nil, "test")

	cases := map[string]http.HandlerFunc{
		"register":         registrationHandler.Create,
		"withdraw":         registrationHandler.Delete,
		"my registrations": registrationHandler.Mine,
		"roster":           registrationHandler.Roster,
		"summary":          registrationHandler.Summary,
		"create event":     eventHandler.Create,
		"update event":     eventHandler.Update,
		"delete event":     eventHandler.Delete,
		"my events":        eventHandler.ListMine,
		"profile":          userHandler.Me,
		"update profile":   userHandler.UpdateMe,
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}
