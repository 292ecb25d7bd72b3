package auth

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
	"mdtboard/internal/platform/models"
)

const (
	SessionCookieName = "session_token"
	sessionTTL        = 7 * 24 * time.Hour
	sessionTokenBytes = 32
)

// SessionStore is the persistence surface the session service needs.
// Implemented by repositories.SessionRepository.
type SessionStore interface {
	Create(session *models.Session) error
	DeleteByToken(token string) error
}

type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Create mints a random opaque session token for the user and persists it
// with a 7-day expiry. The token is a raw secret, not an encoded structure;
// validation happens by lookup.
func (s *SessionService) Create(userID string) (*models.Session, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     base64.RawURLEncoding.EncodeToString(buf),
		ExpiresAt: now.Add(sessionTTL).Unix(),
		CreatedAt: now.Unix(),
	}

	if err := s.store.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Invalidate deletes the session record. A missing record is not an error.
func (s *SessionService) Invalidate(token string) error {
	return s.store.DeleteByToken(token)
}

// Cookie builds the HTTP cookie carrying the session token. SameSite=None
// plus Secure so the frontend can send it cross-site.
func (s *SessionService) Cookie(session *models.Session) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// ExpiredCookie returns a cookie that clears the session on the client.
func (s *SessionService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
