package files

import "database/sql"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const attachmentColumns = `id, meeting_id, patient_id, meeting_patient_id, file_name, original_name,
	file_path, file_type, mime_type, file_size, department_document_type, uploaded_by, created_at`

func scanAttachment(scan func(dest ...interface{}) error) (*Attachment, error) {
	a := &Attachment{}
	err := scan(&a.ID, &a.MeetingID, &a.PatientID, &a.MeetingPatientID, &a.FileName, &a.OriginalName,
		&a.FilePath, &a.FileType, &a.MimeType, &a.FileSize, &a.DepartmentDocumentType, &a.UploadedBy, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Repository) Create(a *Attachment) error {
	_, err := r.db.Exec(`
		INSERT INTO file_attachments (`+attachmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.MeetingID, a.PatientID, a.MeetingPatientID, a.FileName, a.OriginalName,
		a.FilePath, a.FileType, a.MimeType, a.FileSize, a.DepartmentDocumentType, a.UploadedBy, a.CreatedAt)
	return err
}

func (r *Repository) GetByID(id string) (*Attachment, error) {
	row := r.db.QueryRow(`SELECT `+attachmentColumns+` FROM file_attachments WHERE id = ?`, id)
	a, err := scanAttachment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM file_attachments WHERE id = ?`, id)
	return err
}

// ListByPatient returns a patient's attachments newest first.
func (r *Repository) ListByPatient(patientID string) ([]*Attachment, error) {
	rows, err := r.db.Query(`
		SELECT `+attachmentColumns+` FROM file_attachments
		WHERE patient_id = ? ORDER BY created_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := []*Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows.Scan)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
