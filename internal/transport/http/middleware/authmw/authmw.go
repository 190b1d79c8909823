package authmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
)

type contextKey struct{}

// Claims is the token payload issued at login.
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// FromContext returns the authenticated principal, if any.
func FromContext(ctx context.Context) (principal.Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(principal.Principal)
	return p, ok
}

// WithPrincipal is used by tests and internal callers to inject an actor.
func WithPrincipal(ctx context.Context, p principal.Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// New returns a middleware that extracts the principal from a bearer token
// or the token cookie and rejects requests without a valid one.
func New(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				http.Error(w, "Please login to access this resource", http.StatusUnauthorized)

				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)

				return
			}

			p := principal.Principal{
				UserID: claims.UserID,
				Role:   principal.Role(claims.Role),
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin rejects non-admin principals. It must run after New.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok || !p.IsAdmin() {
			http.Error(w, "Role is not allowed to access this resource", http.StatusForbidden)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}

	return ""
}
