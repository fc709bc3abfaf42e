package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/logger"
	"lendshare-backend/internal/security"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the request principal, or the anonymous
// sentinel when authentication did not run or failed softly.
func PrincipalFromContext(ctx context.Context) authz.Principal {
	if p, ok := ctx.Value(principalKey).(authz.Principal); ok {
		return p
	}
	return authz.Anonymous()
}

// Authenticator turns bearer tokens into principals.
type Authenticator struct {
	tokens security.TokenManager
}

func NewAuthenticator(tokens security.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func (a *Authenticator) principalFromRequest(r *http.Request) (authz.Principal, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return authz.Anonymous(), false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return authz.Anonymous(), false
	}

	claims, err := a.tokens.ValidateToken(parts[1])
	if err != nil || claims.Type != security.TokenTypeAccess {
		return authz.Anonymous(), false
	}
	return authz.Principal{
		UserID:      claims.UserID,
		Roles:       claims.Roles,
		AdminScheme: claims.Scheme == security.SchemeAdmin,
	}, true
}

// Optional resolves the principal when a valid token is present and falls
// back to anonymous otherwise. Used on publicly readable routes.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := a.principalFromRequest(r)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

// Require rejects requests without a valid access token.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := a.principalFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

// RequireAdmin rejects anything but an admin-scheme principal with the Admin
// role.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFromContext(r.Context())
		if !p.IsAdmin() {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequestLogging logs method, path, and duration for every request.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled", "method", r.Method, "path", r.URL.Path, "duration_ms", time.Since(start).Milliseconds())
	})
}
