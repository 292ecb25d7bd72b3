package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	apiContext "mdtboard/internal/api/context"
	"mdtboard/internal/pkg/errors"
	"mdtboard/internal/platform/auth"
	"mdtboard/internal/platform/models"
	"mdtboard/internal/platform/repositories"
)

// AuthMiddleware resolves a caller identity from one of two credential
// channels, tried in a fixed order: the session cookie first, then a bearer
// token. Whichever resolves first wins.
type AuthMiddleware struct {
	tokenSvc    *auth.TokenService
	userRepo    *repositories.UserRepository
	sessionRepo *repositories.SessionRepository
}

func NewAuthMiddleware(tokenSvc *auth.TokenService, userRepo *repositories.UserRepository, sessionRepo *repositories.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:    tokenSvc,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Channel 1: cookie-carried session token.
		if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
			session, err := m.sessionRepo.GetActiveByToken(cookie.Value, time.Now().Unix())
			if err != nil {
				errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load session", nil)
				return
			}
			if session != nil {
				user, err := m.userRepo.GetByID(session.UserID)
				if err != nil {
					errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load user", nil)
					return
				}
				if user != nil {
					next(w, r.WithContext(withUser(r.Context(), user)))
					return
				}
			}
		}

		// Channel 2: bearer token from the authorization header.
		if token := bearerToken(r); token != "" {
			claims, err := m.tokenSvc.Validate(token)
			if err == auth.ErrTokenExpired {
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Token expired", nil)
				return
			}
			if err == nil {
				user, err := m.userRepo.GetByID(claims.Subject)
				if err != nil {
					errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load user", nil)
					return
				}
				if user != nil {
					next(w, r.WithContext(withUser(r.Context(), user)))
					return
				}
			}
			// malformed tokens fall through to the generic rejection
		}

		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Not authenticated", nil)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, apiContext.User, user)
}
