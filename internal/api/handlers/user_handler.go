package handlers

import (
	"encoding/json"
	"net/http"

	"mdtboard/internal/pkg/errors"
	"mdtboard/internal/platform/repositories"
)

type UserHandler struct {
	userRepo *repositories.UserRepository
}

func NewUserHandler(userRepo *repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.ListActive()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userRepo.GetByID(pathParam(r, "user_id"))
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if user == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "User not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update patches the caller's own profile. The allow-list lives in the
// repository; unknown fields are dropped silently.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "user_id")
	if currentUser(r).ID != userID {
		errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Can only update own profile", nil)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := h.userRepo.UpdateProfile(userID, patch); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update user", nil)
		return
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil || user == nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load user", nil)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
