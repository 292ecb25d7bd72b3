package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mdtboard/internal/pkg/errors"
	"mdtboard/internal/pkg/validator"
	"mdtboard/internal/platform/auth"
	"mdtboard/internal/platform/models"
	"mdtboard/internal/platform/repositories"
)

type AuthHandler struct {
	userRepo   *repositories.UserRepository
	tokenSvc   *auth.TokenService
	sessionSvc *auth.SessionService
	federated  *auth.FederatedClient
}

func NewAuthHandler(userRepo *repositories.UserRepository, tokenSvc *auth.TokenService, sessionSvc *auth.SessionService, federated *auth.FederatedClient) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		tokenSvc:   tokenSvc,
		sessionSvc: sessionSvc,
		federated:  federated,
	}
}

type RegisterRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Specialty    string `json:"specialty"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := validator.IsEmail(req.Email); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	existing, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if existing != nil {
		errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "Email already registered", nil)
		return
	}

	// Password is optional: without one, only federated/session login works.
	var passwordHash *string
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to hash password", nil)
			return
		}
		passwordHash = &hash
	}

	role := req.Role
	if role == "" {
		role = "doctor"
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Specialty:    req.Specialty,
		Organization: req.Organization,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().Unix(),
	}

	if err := h.userRepo.Create(user); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create user", nil)
		return
	}

	token, err := h.tokenSvc.Generate(user.ID, user.Email)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to generate token", nil)
		return
	}

	writeJSON(w, http.StatusCreated, TokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if user == nil || user.PasswordHash == nil {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid credentials", nil)
		return
	}

	if !auth.VerifyPassword(req.Password, *user.PasswordHash) {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.tokenSvc.Generate(user.ID, user.Email)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to generate token", nil)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

type SessionResponse struct {
	User         *models.User `json:"user"`
	SessionToken string       `json:"session_token"`
}

// Session exchanges an opaque external session id for identity attributes,
// provisions or refreshes the local user, and sets the session cookie.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "session_id required", nil)
		return
	}

	data, err := h.federated.Exchange(r.Context(), req.SessionID)
	if err != nil {
		log.Warn().Err(err).Msg("federated session exchange failed")
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid session", nil)
		return
	}

	user, err := h.userRepo.GetByEmail(data.Email)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	if user == nil {
		user = &models.User{
			ID:        uuid.New().String(),
			Email:     data.Email,
			Name:      data.Name,
			Picture:   data.Picture,
			Role:      "doctor",
			IsActive:  true,
			CreatedAt: time.Now().Unix(),
		}
		if err := h.userRepo.Create(user); err != nil {
			errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create user", nil)
			return
		}
	} else {
		if err := h.userRepo.RefreshFederated(user.ID, data.Name, data.Picture); err != nil {
			errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update user", nil)
			return
		}
		user.Name = data.Name
		user.Picture = data.Picture
	}

	session, err := h.sessionSvc.Create(user.ID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create session", nil)
		return
	}

	http.SetCookie(w, h.sessionSvc.Cookie(session))
	writeJSON(w, http.StatusOK, SessionResponse{User: user, SessionToken: session.Token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessionSvc.Invalidate(cookie.Value); err != nil {
			errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to end session", nil)
			return
		}
	}
	http.SetCookie(w, h.sessionSvc.ExpiredCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
