package middleware

import (
	"context"
	"net/http"

	"github.com/campuslane/server/internal/api/apierr"
	"github.com/campuslane/server/internal/auth"
)

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Role   auth.Role
}

// RequireAuth validates the Bearer token and stores the caller identity in
// the request context. Requests without a valid token get 401.
func RequireAuth(jwtManager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", err, env)
				return
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				apierr.Write(w, r, apierr.KindUnauthorized, "invalid or expired token", err, env)
				return
			}

			identity := Identity{UserID: claims.Subject, Role: claims.Role}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose role is not ADMIN. Must run after
// RequireAuth.
func RequireAdmin(env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				apierr.Write(w, r, apierr.KindUnauthorized, "authentication required", auth.ErrMissingToken, env)
				return
			}
			if identity.Role != auth.RoleAdmin {
				apierr.Write(w, r, apierr.KindForbidden, "admin access required", nil, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the caller identity set by RequireAuth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
