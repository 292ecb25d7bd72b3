package handlers

import (
	"net/http"

	"mdtboard/internal/engine/files"
	"mdtboard/internal/pkg/errors"
)

// maxUploadBytes caps a single multipart upload held in memory before
// spilling to temp files.
const maxUploadBytes = 32 << 20

type FileHandler struct {
	svc *files.Service
}

func NewFileHandler(svc *files.Service) *FileHandler {
	return &FileHandler{svc: svc}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "file is required", nil)
		return
	}
	defer file.Close()

	input := &files.UploadInput{
		MeetingID:    pathParam(r, "meeting_id"),
		OriginalName: header.Filename,
		FileType:     r.FormValue("file_type"),
		MimeType:     header.Header.Get("Content-Type"),
		UploadedBy:   currentUser(r).ID,
	}
	if v := r.FormValue("patient_id"); v != "" {
		input.PatientID = &v
	}
	if v := r.FormValue("meeting_patient_id"); v != "" {
		input.MeetingPatientID = &v
	}
	if v := r.FormValue("department_document_type"); v != "" {
		input.DepartmentDocumentType = &v
	}

	attachment, err := h.svc.Upload(input, file)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to store file", nil)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":        attachment.ID,
		"file_name": attachment.FileName,
		"message":   "File uploaded",
	})
}

// Download streams the stored bytes with the original filename and the
// recorded mime type.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	attachment, err := h.svc.Get(pathParam(r, "file_id"))
	if err == files.ErrNotFound {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "File not found", nil)
		return
	}
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Database error", nil)
		return
	}

	content, err := h.svc.OpenContent(attachment)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "File content missing", nil)
		return
	}
	defer content.Close()

	if attachment.MimeType != "" {
		w.Header().Set("Content-Type", attachment.MimeType)
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+attachment.OriginalName+`"`)

	stat, err := content.Stat()
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to read file", nil)
		return
	}
	http.ServeContent(w, r, attachment.OriginalName, stat.ModTime(), content)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(pathParam(r, "file_id"))
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted"})
	case files.ErrNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "File not found", nil)
	default:
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to delete file", nil)
	}
}
