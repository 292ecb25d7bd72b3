package files

type Attachment struct {
	ID                     string  `json:"id"`
	MeetingID              string  `json:"meeting_id"`
	PatientID              *string `json:"patient_id,omitempty"`
	MeetingPatientID       *string `json:"meeting_patient_id,omitempty"`
	FileName               string  `json:"file_name"`
	OriginalName           string  `json:"original_name"`
	FilePath               string  `json:"-"`
	FileType               string  `json:"file_type"`
	MimeType               string  `json:"mime_type,omitempty"`
	FileSize               int64   `json:"file_size"`
	DepartmentDocumentType *string `json:"department_document_type,omitempty"`
	UploadedBy             string  `json:"uploaded_by,omitempty"`
	CreatedAt              int64   `json:"created_at"`
}
