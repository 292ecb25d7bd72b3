package files

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("file not found")

type Service struct {
	repo  *Repository
	store *Store
}

func NewService(repo *Repository, store *Store) *Service {
	return &Service{repo: repo, store: store}
}

type UploadInput struct {
	MeetingID              string
	PatientID              *string
	MeetingPatientID       *string
	OriginalName           string
	FileType               string
	MimeType               string
	DepartmentDocumentType *string
	UploadedBy             string
}

func (s *Service) Upload(input *UploadInput, src io.Reader) (*Attachment, error) {
	fileName := GenerateName(input.OriginalName)

	path, size, err := s.store.Save(input.MeetingID, fileName, src)
	if err != nil {
		return nil, err
	}

	fileType := input.FileType
	if fileType == "" {
		fileType = "other"
	}

	attachment := &Attachment{
		ID:                     uuid.New().String(),
		MeetingID:              input.MeetingID,
		PatientID:              input.PatientID,
		MeetingPatientID:       input.MeetingPatientID,
		FileName:               fileName,
		OriginalName:           input.OriginalName,
		FilePath:               path,
		FileType:               fileType,
		MimeType:               input.MimeType,
		FileSize:               size,
		DepartmentDocumentType: input.DepartmentDocumentType,
		UploadedBy:             input.UploadedBy,
		CreatedAt:              time.Now().Unix(),
	}

	if err := s.repo.Create(attachment); err != nil {
		// keep disk and db consistent if the insert fails
		s.store.Remove(path)
		return nil, err
	}
	return attachment, nil
}

func (s *Service) Get(id string) (*Attachment, error) {
	attachment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, ErrNotFound
	}
	return attachment, nil
}

func (s *Service) OpenContent(attachment *Attachment) (*os.File, error) {
	return s.store.Open(attachment.FilePath)
}

// Delete removes the record; disk removal is best effort and a failure
// never blocks the logical delete.
func (s *Service) Delete(id string) error {
	attachment, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if attachment == nil {
		return ErrNotFound
	}

	if err := s.store.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file_id", id).Msg("failed to remove attachment from disk")
	}

	return s.repo.Delete(id)
}

func (s *Service) ListByPatient(patientID string) ([]*Attachment, error) {
	return s.repo.ListByPatient(patientID)
}
