package handlers

import (
	"encoding/json"
	"net/http"

	"mdtboard/internal/engine/meetings"
	"mdtboard/internal/pkg/errors"
)

type MeetingHandler struct {
	svc *meetings.Service
}

func NewMeetingHandler(svc *meetings.Service) *MeetingHandler {
	return &MeetingHandler{svc: svc}
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	filterType := r.URL.Query().Get("filter_type")
	status := r.URL.Query().Get("status")

	items, err := h.svc.List(currentUser(r).ID, filterType, status)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input meetings.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}
	if input.Title == "" || input.MeetingDate == "" || input.StartTime == "" || input.EndTime == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "title, meeting_date, start_time and end_time are required", nil)
		return
	}

	view, err := h.svc.Create(currentUser(r).ID, &input)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create meeting", nil)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(pathParam(r, "meeting_id"))
	if err == meetings.ErrNotFound {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Meeting not found", nil)
		return
	}
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	view, err := h.svc.Update(pathParam(r, "meeting_id"), currentUser(r).ID, patch)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, view)
	case meetings.ErrNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Meeting not found", nil)
	case meetings.ErrForbidden:
		errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Only organizer can update meeting", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update meeting", nil)
	}
}

func (h *MeetingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Cancel(pathParam(r, "meeting_id"), currentUser(r).ID)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Meeting cancelled"})
	case meetings.ErrNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Meeting not found", nil)
	case meetings.ErrForbidden:
		errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Only organizer can cancel meeting", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to cancel meeting", nil)
	}
}

type InviteRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (h *MeetingHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "user_id required", nil)
		return
	}

	err := h.svc.InviteParticipant(pathParam(r, "meeting_id"), req.UserID, req.Role)
	switch err {
	case nil:
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Participant added"})
	case meetings.ErrNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Meeting not found", nil)
	case meetings.ErrDuplicateUser:
		errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "User already a participant", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to add participant", nil)
	}
}

type RespondRequest struct {
	ResponseStatus string `json:"response_status"`
}

func (h *MeetingHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	err := h.svc.RecordResponse(pathParam(r, "meeting_id"), currentUser(r).ID, req.ResponseStatus)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Response recorded: " + req.ResponseStatus})
	case meetings.ErrInvalidResponse:
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid response status", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to record response", nil)
	}
}

func (h *MeetingHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveParticipant(pathParam(r, "meeting_id"), currentUser(r).ID, pathParam(r, "user_id"))
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Participant removed"})
	case meetings.ErrForbidden:
		errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Only organizer can remove participants", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to remove participant", nil)
	}
}

func (h *MeetingHandler) AddCase(w http.ResponseWriter, r *http.Request) {
	var input meetings.CaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.PatientID == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "patient_id required", nil)
		return
	}

	link, err := h.svc.AddCase(pathParam(r, "meeting_id"), currentUser(r).ID, &input)
	switch err {
	case nil:
		writeJSON(w, http.StatusCreated, map[string]string{"id": link.ID, "message": "Patient added to meeting"})
	case meetings.ErrDuplicateCase:
		errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "Patient already in meeting", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to add patient", nil)
	}
}

func (h *MeetingHandler) RemoveCase(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveCase(pathParam(r, "meeting_id"), pathParam(r, "patient_id")); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to remove patient", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Patient removed from meeting"})
}
