package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adrialopez/woocommerce-orders/config"
	"github.com/adrialopez/woocommerce-orders/pkg/auth"
	"github.com/adrialopez/woocommerce-orders/pkg/middleware"
)

func gateAround(handler http.HandlerFunc) http.Handler {
	return middleware.SessionGate(handler)
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func TestPublicPathsPassWithoutCredential(t *testing.T) {
	for _, path := range []string{"/login", "/api/auth/login", "/metrics", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		gateAround(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestPageWithoutCredentialRedirectsToLogin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	gateAround(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("location = %q, want /login", loc)
	}
}

func TestAPIWithoutCredentialGets401JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/woocommerce", nil)
	rec := httptest.NewRecorder()

	gateAround(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "No autorizado") {
		t.Errorf("body = %q", body)
	}
}

// expiredToken signs a session token whose validity window already closed.
func expiredToken(t *testing.T) string {
	t.Helper()
	claims := auth.Claims{
		UserID:   1,
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-9 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestExpiredCredentialRedirectsToLogin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: expiredToken(t)})
	rec := httptest.NewRecorder()

	gateAround(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("location = %q, want /login", loc)
	}
}

func TestExpiredCredentialGets401OnAPI(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/woocommerce", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: expiredToken(t)})
	rec := httptest.NewRecorder()

	gateAround(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestInvalidCredentialRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/woocommerce", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()

	gateAround(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestValidCredentialPassesAndExposesClaims(t *testing.T) {
	token, err := auth.GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var gotUsername string
	handler := gateAround(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := middleware.ClaimsFromCtx(r.Context()); ok {
			gotUsername = claims.Username
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/woocommerce", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUsername != "admin" {
		t.Errorf("claims username = %q, want admin", gotUsername)
	}
}
