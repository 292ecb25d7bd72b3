package handlers

import (
	"net/http"

	"mdtboard/internal/engine/meetings"
	"mdtboard/internal/pkg/errors"
	"mdtboard/internal/platform/repositories"
)

type DashboardHandler struct {
	meetingSvc  *meetings.Service
	patientRepo *repositories.PatientRepository
}

func NewDashboardHandler(meetingSvc *meetings.Service, patientRepo *repositories.PatientRepository) *DashboardHandler {
	return &DashboardHandler{meetingSvc: meetingSvc, patientRepo: patientRepo}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.meetingSvc.Stats(currentUser(r).ID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	if stats.TotalPatients, err = h.patientRepo.CountActive(); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
