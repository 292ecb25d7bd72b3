package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	apiContext "mdtboard/internal/api/context"
	"mdtboard/internal/platform/auth"
	"mdtboard/internal/platform/config"
	"mdtboard/internal/platform/models"
	"mdtboard/internal/platform/repositories"
)

func newTestMiddleware(t *testing.T) (*AuthMiddleware, sqlmock.Sqlmock, *auth.TokenService) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokenSvc := auth.NewTokenService(config.JWTConfig{
		Secret:          "test-secret",
		Algorithm:       "HS256",
		ExpirationHours: 1,
	})
	mw := NewAuthMiddleware(tokenSvc, repositories.NewUserRepository(db), repositories.NewSessionRepository(db))
	return mw, mock, tokenSvc
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "name", "password_hash", "specialty",
		"organization", "phone", "role", "picture", "is_active", "created_at",
	}).AddRow("user-1", "doctor@hospital.test", "Dr. Test", nil, "oncology", "", "", "doctor", "", true, time.Now().Unix())
}

func captureUser(t *testing.T) (http.HandlerFunc, func() *models.User) {
	var captured *models.User
	handler := func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(apiContext.User).(*models.User)
		w.WriteHeader(http.StatusOK)
	}
	return handler, func() *models.User { return captured }
}

func TestAuthMiddleware_SessionCookie(t *testing.T) {
	mw, mock, _ := newTestMiddleware(t)

	mock.ExpectQuery("SELECT id, user_id, session_token, expires_at, created_at").
		WithArgs("cookie-token", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "session_token", "expires_at", "created_at"}).
			AddRow("sess-1", "user-1", "cookie-token", time.Now().Add(time.Hour).Unix(), time.Now().Unix()))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("user-1").
		WillReturnRows(userRows())

	next, captured := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "cookie-token"})
	rec := httptest.NewRecorder()

	mw.Handle(next)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if user := captured(); user == nil || user.ID != "user-1" {
		t.Errorf("Expected user-1 in context, got %+v", captured())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	mw, mock, tokenSvc := newTestMiddleware(t)

	token, err := tokenSvc.Generate("user-1", "doctor@hospital.test")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("user-1").
		WillReturnRows(userRows())

	next, captured := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Handle(next)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if user := captured(); user == nil || user.ID != "user-1" {
		t.Errorf("Expected user-1 in context, got %+v", captured())
	}
}

func TestAuthMiddleware_ExpiredSessionFallsThrough(t *testing.T) {
	mw, mock, _ := newTestMiddleware(t)

	// Expired sessions are invisible to the lookup; with no other
	// credential the request is rejected.
	mock.ExpectQuery("SELECT id, user_id, session_token, expires_at, created_at").
		WithArgs("stale-token", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "session_token", "expires_at", "created_at"}))

	next, _ := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "stale-token"})
	rec := httptest.NewRecorder()

	mw.Handle(next)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredBearerToken(t *testing.T) {
	mw, _, _ := newTestMiddleware(t)

	expiredSvc := auth.NewTokenService(config.JWTConfig{
		Secret:          "test-secret",
		Algorithm:       "HS256",
		ExpirationHours: -1,
	})
	token, err := expiredSvc.Generate("user-1", "doctor@hospital.test")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	next, _ := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Handle(next)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_NoCredentials(t *testing.T) {
	mw, _, _ := newTestMiddleware(t)

	next, captured := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	mw.Handle(next)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
	if captured() != nil {
		t.Error("Expected no user in context")
	}
}

func TestBearerToken_Parsing(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if got := bearerToken(req); got != tc.want {
			t.Errorf("Header %q: expected %q, got %q", tc.header, tc.want, got)
		}
	}
}
