package handlers

import (
	"encoding/json"
	"net/http"

	"mdtboard/internal/engine/meetings"
	"mdtboard/internal/pkg/errors"
)

type AgendaHandler struct {
	svc *meetings.Service
}

func NewAgendaHandler(svc *meetings.Service) *AgendaHandler {
	return &AgendaHandler{svc: svc}
}

func (h *AgendaHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input meetings.AgendaItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "title required", nil)
		return
	}

	item, err := h.svc.AddAgendaItem(pathParam(r, "meeting_id"), &input)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to add agenda item", nil)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *AgendaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	item, err := h.svc.UpdateAgendaItem(pathParam(r, "meeting_id"), pathParam(r, "item_id"), patch)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, item)
	case meetings.ErrNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Agenda item not found", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update agenda item", nil)
	}
}

func (h *AgendaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAgendaItem(pathParam(r, "meeting_id"), pathParam(r, "item_id")); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete agenda item", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Agenda item deleted"})
}
