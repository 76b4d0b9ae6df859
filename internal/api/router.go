package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/campuslane/server/internal/api/handlers"
	"github.com/campuslane/server/internal/api/middleware"
	"github.com/campuslane/server/internal/auth"
	"github.com/campuslane/server/internal/config"
	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/registrations"
	"github.com/campuslane/server/internal/domain/users"
	"github.com/campuslane/server/internal/metrics"
	"github.com/campuslane/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewRouter wires services, handlers, and the middleware chain. The pool is
// only used by the readiness probe; all data access goes through repo.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, repo storage.Repository, jwtManager *auth.JWTManager) http.Handler {
	usersService := users.NewService(repo.Users(), jwtManager)
	eventsService := events.NewService(repo.Events())
	registrationsService := registrations.NewService(repo.Registrations(), repo.Events())

	env := cfg.Environment
	authHandler := handlers.NewAuthHandler(usersService, env)
	userHandler := handlers.NewUserHandler(usersService, env)
	eventHandler := handlers.NewEventHandler(eventsService, env)
	registrationHandler := handlers.NewRegistrationHandler(registrationsService, env)

	requireAuth := middleware.RequireAuth(jwtManager, env)
	requireAdmin := func(next http.Handler) http.Handler {
		return requireAuth(middleware.RequireAdmin(env)(next))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/v1/auth/signup", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Signup),
	}))
	mux.Handle("/api/v1/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))
	mux.Handle("/api/v1/auth/logout", methodMux(map[string]http.Handler{
		http.MethodPost: requireAuth(http.HandlerFunc(authHandler.Logout)),
	}))

	mux.Handle("/api/v1/users/me", methodMux(map[string]http.Handler{
		http.MethodGet:   requireAuth(http.HandlerFunc(userHandler.Me)),
		http.MethodPatch: requireAuth(http.HandlerFunc(userHandler.UpdateMe)),
	}))

	mux.Handle("/api/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventHandler.List),
		http.MethodPost: requireAdmin(http.HandlerFunc(eventHandler.Create)),
	}))
	mux.Handle("/api/v1/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventHandler.Get),
		http.MethodPatch:  requireAdmin(http.HandlerFunc(eventHandler.Update)),
		http.MethodDelete: requireAdmin(http.HandlerFunc(eventHandler.Delete)),
	}))
	mux.Handle("/api/v1/events/{id}/registrations", methodMux(map[string]http.Handler{
		http.MethodGet: requireAuth(http.HandlerFunc(registrationHandler.Roster)),
	}))

	mux.Handle("/api/v1/admin/events", methodMux(map[string]http.Handler{
		http.MethodGet: requireAdmin(http.HandlerFunc(eventHandler.ListMine)),
	}))
	mux.Handle("/api/v1/admin/events/summary", methodMux(map[string]http.Handler{
		http.MethodGet: requireAdmin(http.HandlerFunc(registrationHandler.Summary)),
	}))

	mux.Handle("/api/v1/registrations", methodMux(map[string]http.Handler{
		http.MethodPost: requireAuth(http.HandlerFunc(registrationHandler.Create)),
	}))
	mux.Handle("/api/v1/registrations/{id}", methodMux(map[string]http.Handler{
		http.MethodDelete: requireAuth(http.HandlerFunc(registrationHandler.Delete)),
	}))
	mux.Handle("/api/v1/registrations/mine", methodMux(map[string]http.Handler{
		http.MethodGet: requireAuth(http.HandlerFunc(registrationHandler.Mine)),
	}))

	var handler http.Handler = mux
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.SecurityHeaders(cfg.Environment == "production")(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
