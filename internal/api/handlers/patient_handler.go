package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"mdtboard/internal/engine/files"
	"mdtboard/internal/engine/meetings"
	"mdtboard/internal/pkg/errors"
	"mdtboard/internal/platform/models"
	"mdtboard/internal/platform/repositories"
)

type PatientHandler struct {
	patientRepo *repositories.PatientRepository
	meetingSvc  *meetings.Service
	fileSvc     *files.Service
}

func NewPatientHandler(patientRepo *repositories.PatientRepository, meetingSvc *meetings.Service, fileSvc *files.Service) *PatientHandler {
	return &PatientHandler{
		patientRepo: patientRepo,
		meetingSvc:  meetingSvc,
		fileSvc:     fileSvc,
	}
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	department := r.URL.Query().Get("department")

	patients, err := h.patientRepo.List(search, department)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}
	if patient.FirstName == "" || patient.LastName == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "first_name and last_name are required", nil)
		return
	}

	patient.ID = uuid.New().String()
	patient.IsActive = true
	patient.CreatedBy = currentUser(r).ID
	patient.CreatedAt = time.Now().Unix()

	if err := h.patientRepo.Create(&patient); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create patient", nil)
		return
	}
	writeJSON(w, http.StatusCreated, &patient)
}

type patientDetail struct {
	*models.Patient
	Meetings []map[string]interface{} `json:"meetings"`
	Files    []*files.Attachment      `json:"files"`
}

// Get returns the patient with their discussion history and attachments.
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID := pathParam(r, "patient_id")

	patient, err := h.patientRepo.GetByID(patientID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if patient == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Patient not found", nil)
		return
	}

	patientMeetings, err := h.meetingSvc.MeetingsForPatient(patientID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	attachments, err := h.fileSvc.ListByPatient(patientID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	writeJSON(w, http.StatusOK, patientDetail{Patient: patient, Meetings: patientMeetings, Files: attachments})
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	patientID := pathParam(r, "patient_id")

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := h.patientRepo.Update(patientID, patch); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to update patient", nil)
		return
	}

	patient, err := h.patientRepo.GetByID(patientID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}
	if patient == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Patient not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

// Delete soft-deletes: the row stays, the active flag flips.
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.patientRepo.SoftDelete(pathParam(r, "patient_id")); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete patient", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Patient deleted"})
}
