package handlers

import (
	"encoding/json"
	"net/http"

	"mdtboard/internal/engine/meetings"
	"mdtboard/internal/pkg/errors"
)

type DecisionHandler struct {
	svc *meetings.Service
}

func NewDecisionHandler(svc *meetings.Service) *DecisionHandler {
	return &DecisionHandler{svc: svc}
}

func (h *DecisionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input meetings.DecisionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "title required", nil)
		return
	}

	decision, err := h.svc.AddDecision(pathParam(r, "meeting_id"), currentUser(r).ID, &input)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to log decision", nil)
		return
	}
	writeJSON(w, http.StatusCreated, decision)
}

func (h *DecisionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	decision, err := h.svc.UpdateDecision(pathParam(r, "decision_id"), patch)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, decision)
	case meetings.ErrNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Decision not found", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update decision", nil)
	}
}
