package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/campuslane/server/internal/api/apierr"
	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/registrations"
	"github.com/campuslane/server/internal/domain/users"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 20 // 1 MiB

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
	}
}

// decodeJSON reads and validates a request body into dst. On failure it
// writes the error envelope and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, env string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		apierr.Write(w, r, apierr.KindInvalidArgument, "invalid request body", err, env)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make(map[string]string, len(invalid))
			for _, fieldErr := range invalid {
				fields[strings.ToLower(fieldErr.Field())] = validationMessage(fieldErr)
			}
			apierr.Write(w, r, apierr.KindInvalidArgument, "validation failed", err, env, apierr.WithFields(fields))
			return false
		}
		apierr.Write(w, r, apierr.KindInvalidArgument, "validation failed", err, env)
		return false
	}

	return true
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	default:
		return "invalid value"
	}
}

func pathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}

// writeDomainError maps domain sentinel errors to the API error envelope.
// Unrecognized errors become 500 Internal.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var userValidation users.ValidationError
	var regValidation registrations.ValidationError
	var filterErr events.FilterError

	switch {
	case errors.As(err, &userValidation):
		apierr.Write(w, r, apierr.KindInvalidArgument, userValidation.Error(), err, env,
			apierr.WithFields(map[string]string{userValidation.Field: userValidation.Message}))
	case errors.As(err, &regValidation):
		apierr.Write(w, r, apierr.KindInvalidArgument, regValidation.Error(), err, env,
			apierr.WithFields(map[string]string{regValidation.Field: regValidation.Message}))
	case errors.As(err, &filterErr):
		apierr.Write(w, r, apierr.KindInvalidArgument, filterErr.Error(), err, env)
	case errors.Is(err, users.ErrEmailTaken):
		apierr.Write(w, r, apierr.KindInvalidArgument, "Email already registered", err, env)
	case errors.Is(err, users.ErrBadCredentials), errors.Is(err, users.ErrNotFound):
		// Unknown email and wrong password are indistinguishable to callers.
		apierr.Write(w, r, apierr.KindUnauthorized, "invalid credentials", err, env)
	case errors.Is(err, registrations.ErrAlreadyRegistered):
		apierr.Write(w, r, apierr.KindConflict, "Already registered for this event", err, env)
	case errors.Is(err, registrations.ErrStudentsOnly):
		apierr.Write(w, r, apierr.KindForbidden, "only students can register for events", err, env)
	case errors.Is(err, registrations.ErrAdminsOnly):
		apierr.Write(w, r, apierr.KindForbidden, "only admins can view registrations", err, env)
	case errors.Is(err, registrations.ErrNotOwner):
		apierr.Write(w, r, apierr.KindForbidden, "registration belongs to another student", err, env)
	case errors.Is(err, registrations.ErrNotFound):
		apierr.Write(w, r, apierr.KindNotFound, "Registration not found", err, env)
	case errors.Is(err, events.ErrNotOwner):
		apierr.Write(w, r, apierr.KindForbidden, "event not owned by caller", err, env)
	case errors.Is(err, events.ErrNotFound):
		apierr.Write(w, r, apierr.KindNotFound, "Event not found", err, env)
	default:
		apierr.Write(w, r, apierr.KindInternal, "", err, env)
	}
}
