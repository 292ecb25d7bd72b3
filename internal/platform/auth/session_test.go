package auth

import (
	"net/http"
	"testing"
	"time"

	"mdtboard/internal/platform/models"
)

type fakeSessionStore struct {
	created []*models.Session
	deleted []string
}

func (f *fakeSessionStore) Create(session *models.Session) error {
	f.created = append(f.created, session)
	return nil
}

func (f *fakeSessionStore) DeleteByToken(token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func TestSessionService_Create(t *testing.T) {
	store := &fakeSessionStore{}
	svc := NewSessionService(store)

	s1, err := svc.Create("user-1")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	s2, err := svc.Create("user-1")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if s1.Token == "" || s1.Token == s2.Token {
		t.Error("Expected distinct non-empty tokens")
	}
	if s1.UserID != "user-1" {
		t.Errorf("Expected user-1, got %s", s1.UserID)
	}

	wantExpiry := time.Now().Add(sessionTTL).Unix()
	if s1.ExpiresAt < wantExpiry-5 || s1.ExpiresAt > wantExpiry+5 {
		t.Errorf("Expected expiry near %d, got %d", wantExpiry, s1.ExpiresAt)
	}
	if len(store.created) != 2 {
		t.Errorf("Expected 2 persisted sessions, got %d", len(store.created))
	}
}

func TestSessionService_Cookies(t *testing.T) {
	svc := NewSessionService(&fakeSessionStore{})

	session := &models.Session{Token: "tok-123"}
	cookie := svc.Cookie(session)
	if cookie.Name != SessionCookieName || cookie.Value != "tok-123" {
		t.Errorf("Unexpected cookie %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Error("Expected HttpOnly, Secure, SameSite=None cookie")
	}

	expired := svc.ExpiredCookie()
	if expired.MaxAge != -1 {
		t.Errorf("Expected MaxAge -1, got %d", expired.MaxAge)
	}
}
