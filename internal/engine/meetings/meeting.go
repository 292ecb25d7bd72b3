package meetings

import "mdtboard/internal/platform/models"

// Meeting statuses. Cancellation is a status change, not a deletion;
// dependent records survive it.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"

	ResponsePending   = "pending"
	ResponseAccepted  = "accepted"
	ResponseDeclined  = "declined"
	ResponseTentative = "tentative"
)

type Meeting struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description,omitempty"`
	MeetingDate       string  `json:"meeting_date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	DurationMinutes   int     `json:"duration_minutes"`
	MeetingType       string  `json:"meeting_type"`
	Location          string  `json:"location,omitempty"`
	VideoLink         string  `json:"video_link,omitempty"`
	RecurrenceType    string  `json:"recurrence_type"`
	RecurrenceEndDate *string `json:"recurrence_end_date,omitempty"`
	Status            string  `json:"status"`
	OrganizerID       string  `json:"organizer_id"`
	CreatedAt         int64   `json:"created_at"`
}

// Participant is a meeting_participants row joined with the user's public
// profile fields.
type Participant struct {
	ID             string `json:"id"`
	MeetingID      string `json:"meeting_id"`
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	ResponseStatus string `json:"response_status"`
	ResponseDate   *int64 `json:"response_date,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialty      string `json:"specialty,omitempty"`
	Picture        string `json:"picture,omitempty"`
}

// CaseLink ties a patient to a meeting, joined with the patient's clinical
// summary fields for the aggregate view.
type CaseLink struct {
	ID                  string  `json:"id"`
	MeetingID           string  `json:"meeting_id"`
	PatientID           string  `json:"patient_id"`
	ClinicalQuestion    string  `json:"clinical_question,omitempty"`
	ReasonForDiscussion string  `json:"reason_for_discussion,omitempty"`
	Status              string  `json:"status"`
	AddedBy             string  `json:"added_by,omitempty"`
	FirstName           string  `json:"first_name"`
	LastName            string  `json:"last_name"`
	PatientIDNumber     string  `json:"patient_id_number,omitempty"`
	PrimaryDiagnosis    string  `json:"primary_diagnosis,omitempty"`
	DepartmentName      string  `json:"department_name,omitempty"`
	DateOfBirth         *string `json:"date_of_birth,omitempty"`
	Gender              string  `json:"gender,omitempty"`
}

type AgendaItem struct {
	ID                       string `json:"id"`
	MeetingID                string `json:"meeting_id"`
	Title                    string `json:"title"`
	Description              string `json:"description,omitempty"`
	OrderIndex               int    `json:"order_index"`
	EstimatedDurationMinutes *int   `json:"estimated_duration_minutes,omitempty"`
	AssignedTo               string `json:"assigned_to,omitempty"`
	AssignedToName           string `json:"assigned_to_name,omitempty"`
	IsCompleted              bool   `json:"is_completed"`
	Notes                    string `json:"notes,omitempty"`
}

type Decision struct {
	ID                  string  `json:"id"`
	MeetingID           string  `json:"meeting_id"`
	MeetingPatientID    *string `json:"meeting_patient_id,omitempty"`
	AgendaItemID        *string `json:"agenda_item_id,omitempty"`
	DecisionType        string  `json:"decision_type"`
	Title               string  `json:"title"`
	Description         string  `json:"description,omitempty"`
	FinalAssessment     string  `json:"final_assessment,omitempty"`
	ActionPlan          string  `json:"action_plan,omitempty"`
	ResponsibleDoctorID *string `json:"responsible_doctor_id,omitempty"`
	FollowUpDate        *string `json:"follow_up_date,omitempty"`
	Priority            string  `json:"priority"`
	Status              string  `json:"status"`
	CreatedBy           string  `json:"created_by,omitempty"`
	CreatedAt           int64   `json:"created_at"`
}

// AttachmentRow is the read-side projection of a file attachment for the
// aggregate view, joined with the uploader's display name.
type AttachmentRow struct {
	ID           string `json:"id"`
	MeetingID    string `json:"meeting_id"`
	FileName     string `json:"file_name"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	MimeType     string `json:"mime_type,omitempty"`
	FileSize     int64  `json:"file_size"`
	UploadedBy   string `json:"uploaded_by,omitempty"`
	UploaderName string `json:"uploader_name,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// View is the fully assembled aggregate returned by Get and Create.
type View struct {
	Meeting
	Organizer    *models.UserProfile `json:"organizer"`
	Participants []*Participant      `json:"participants"`
	Patients     []*CaseLink         `json:"patients"`
	Agenda       []*AgendaItem       `json:"agenda"`
	Files        []*AttachmentRow    `json:"files"`
	Decisions    []*Decision         `json:"decisions"`
}

// ListItem is the flat row returned by list queries, carrying organizer
// display fields and dependent-record counts instead of the full aggregate.
type ListItem struct {
	Meeting
	OrganizerName      string `json:"organizer_name"`
	OrganizerSpecialty string `json:"organizer_specialty,omitempty"`
	ResponseStatus     string `json:"response_status,omitempty"`
	ParticipantCount   int    `json:"participant_count"`
	PatientCount       int    `json:"patient_count"`
}

// CreateInput is everything a meeting can be created with. Participants,
// patients and agenda items are enrolled in the given order.
type CreateInput struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	MeetingDate       string            `json:"meeting_date"`
	StartTime         string            `json:"start_time"`
	EndTime           string            `json:"end_time"`
	MeetingType       string            `json:"meeting_type"`
	Location          string            `json:"location"`
	VideoLink         string            `json:"video_link"`
	RecurrenceType    string            `json:"recurrence_type"`
	RecurrenceEndDate *string           `json:"recurrence_end_date"`
	ParticipantIDs    []string          `json:"participant_ids"`
	PatientIDs        []string          `json:"patient_ids"`
	AgendaItems       []AgendaItemInput `json:"agenda_items"`
}

type AgendaItemInput struct {
	Title                    string `json:"title"`
	Description              string `json:"description"`
	OrderIndex               int    `json:"order_index"`
	EstimatedDurationMinutes *int   `json:"estimated_duration_minutes"`
	AssignedTo               string `json:"assigned_to"`
}

type CaseInput struct {
	PatientID           string `json:"patient_id"`
	ClinicalQuestion    string `json:"clinical_question"`
	ReasonForDiscussion string `json:"reason_for_discussion"`
	Status              string `json:"status"`
}

type DecisionInput struct {
	MeetingPatientID    *string `json:"meeting_patient_id"`
	AgendaItemID        *string `json:"agenda_item_id"`
	DecisionType        string  `json:"decision_type"`
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	FinalAssessment     string  `json:"final_assessment"`
	ActionPlan          string  `json:"action_plan"`
	ResponsibleDoctorID *string `json:"responsible_doctor_id"`
	FollowUpDate        *string `json:"follow_up_date"`
	Priority            string  `json:"priority"`
}
