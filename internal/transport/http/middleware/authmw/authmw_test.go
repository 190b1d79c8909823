package authmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Dip-ankar/Eccomerce/internal/service/models/principal"
)

const testSecret = "jwt-test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func captureHandler(got *principal.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := FromContext(r.Context()); ok {
			*got = p
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerTokenYieldsPrincipal(t *testing.T) {
	raw := signToken(t, testSecret, Claims{UserID: 7, Role: "user"})

	var got principal.Principal
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	New(testSecret)(captureHandler(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.UserID != 7 || got.Role != principal.RoleUser {
		t.Errorf("principal = %+v", got)
	}
}

func TestCookieTokenYieldsPrincipal(t *testing.T) {
	raw := signToken(t, testSecret, Claims{UserID: 7, Role: "admin"})

	var got principal.Principal
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: raw})
	rec := httptest.NewRecorder()

	New(testSecret)(captureHandler(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !got.IsAdmin() {
		t.Errorf("principal = %+v, want admin", got)
	}
}

func TestMissingTokenRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	var got principal.Principal
	New(testSecret)(captureHandler(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	raw := signToken(t, "other-secret", Claims{UserID: 7, Role: "user"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	var got principal.Principal
	New(testSecret)(captureHandler(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	raw := signToken(t, testSecret, Claims{
		UserID: 7,
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	var got principal.Principal
	New(testSecret)(captureHandler(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	adminReq := httptest.NewRequest(http.MethodGet, "/", nil)
	adminReq = adminReq.WithContext(WithPrincipal(adminReq.Context(), principal.Principal{UserID: 1, Role: principal.RoleAdmin}))
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, adminReq)
	if rec.Code != http.StatusOK {
		t.Errorf("admin got %d, want 200", rec.Code)
	}

	userReq := httptest.NewRequest(http.MethodGet, "/", nil)
	userReq = userReq.WithContext(WithPrincipal(userReq.Context(), principal.Principal{UserID: 7, Role: principal.RoleUser}))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, userReq)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user got %d, want 403", rec.Code)
	}

	anonReq := httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, anonReq)
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous got %d, want 403", rec.Code)
	}
}
