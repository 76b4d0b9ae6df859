// Package apierr writes the uniform JSON error envelope used by every
// handler: {"error": {"kind": ..., "message": ...}}.
package apierr

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Kind classifies an error for API clients.
type Kind string

const (
	KindInvalidArgument Kind = "InvalidArgument"
	KindUnauthorized    Kind = "Unauthorized"
	KindForbidden       Kind = "Forbidden"
	KindNotFound        Kind = "NotFound"
	KindConflict        Kind = "Conflict"
	KindInternal        Kind = "Internal"
)

// Status returns the HTTP status code for a kind.
func (k Kind) Status() int {
	switch k {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Option func(*body)

// WithFields attaches per-field validation messages to the envelope.
func WithFields(fields map[string]string) Option {
	return func(b *body) {
		b.Fields = fields
	}
}

// Write renders the error envelope and logs the underlying error with the
// request logger from context. Server errors (5xx) log at error level, client
// errors at warn. In production the internal error detail never reaches the
// client; message is what the caller chose to expose.
func Write(w http.ResponseWriter, r *http.Request, kind Kind, message string, err error, env string, opts ...Option) {
	status := kind.Status()

	b := body{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(&b)
	}

	if b.Message == "" {
		if err != nil && (env == "development" || env == "test") {
			b.Message = err.Error()
		} else {
			b.Message = http.StatusText(status)
		}
	}

	if err != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("kind", string(kind)).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(b.Message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(envelope{Error: b}); encodeErr != nil {
		zerolog.Ctx(r.Context()).Error().Err(encodeErr).Msg("encode error envelope")
	}
}
