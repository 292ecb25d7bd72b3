package meetings

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("meeting not found")
	ErrForbidden       = errors.New("only the organizer may do this")
	ErrDuplicateUser   = errors.New("user already a participant")
	ErrDuplicateCase   = errors.New("patient already linked to meeting")
	ErrInvalidResponse = errors.New("invalid response status")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts the meeting and its dependent collections in order:
// meeting row, organizer enrollment, remaining participants, case links,
// agenda items. The assembled aggregate view is returned.
func (s *Service) Create(organizerID string, input *CreateInput) (*View, error) {
	now := time.Now()

	meeting := &Meeting{
		ID:                uuid.New().String(),
		Title:             input.Title,
		Description:       input.Description,
		MeetingDate:       input.MeetingDate,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		DurationMinutes:   ComputeDuration(input.StartTime, input.EndTime),
		MeetingType:       input.MeetingType,
		Location:          input.Location,
		VideoLink:         input.VideoLink,
		RecurrenceType:    input.RecurrenceType,
		RecurrenceEndDate: input.RecurrenceEndDate,
		Status:            StatusScheduled,
		OrganizerID:       organizerID,
		CreatedAt:         now.Unix(),
	}
	if meeting.MeetingType == "" {
		meeting.MeetingType = "video"
	}
	if meeting.RecurrenceType == "" {
		meeting.RecurrenceType = "one_time"
	}

	if err := s.repo.Create(meeting); err != nil {
		return nil, err
	}

	// The organizer is always enrolled, accepted, before anyone else.
	organizer := &Participant{
		ID:             uuid.New().String(),
		MeetingID:      meeting.ID,
		UserID:         organizerID,
		Role:           RoleOrganizer,
		ResponseStatus: ResponseAccepted,
	}
	if err := s.repo.InsertParticipant(organizer); err != nil {
		return nil, err
	}

	for _, userID := range input.ParticipantIDs {
		if userID == organizerID {
			continue
		}
		p := &Participant{
			ID:             uuid.New().String(),
			MeetingID:      meeting.ID,
			UserID:         userID,
			Role:           RoleAttendee,
			ResponseStatus: ResponsePending,
		}
		if err := s.repo.InsertParticipant(p); err != nil {
			return nil, err
		}
	}

	for _, patientID := range input.PatientIDs {
		link := &CaseLink{
			ID:        uuid.New().String(),
			MeetingID: meeting.ID,
			PatientID: patientID,
			Status:    "new_case",
			AddedBy:   organizerID,
		}
		if err := s.repo.InsertCase(link); err != nil {
			return nil, err
		}
	}

	for idx, item := range input.AgendaItems {
		agenda := &AgendaItem{
			ID:                       uuid.New().String(),
			MeetingID:                meeting.ID,
			Title:                    item.Title,
			Description:              item.Description,
			OrderIndex:               idx,
			EstimatedDurationMinutes: item.EstimatedDurationMinutes,
			AssignedTo:               item.AssignedTo,
		}
		if err := s.repo.InsertAgendaItem(agenda); err != nil {
			return nil, err
		}
	}

	return s.Get(meeting.ID)
}

// Get assembles the full aggregate: meeting row, organizer profile, and the
// five dependent collections.
func (s *Service) Get(meetingID string) (*View, error) {
	meeting, err := s.repo.GetByID(meetingID)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrNotFound
	}

	view := &View{Meeting: *meeting}

	if view.Organizer, err = s.repo.GetOrganizer(meetingID); err != nil {
		return nil, err
	}
	if view.Participants, err = s.repo.ListParticipants(meetingID); err != nil {
		return nil, err
	}
	if view.Patients, err = s.repo.ListCases(meetingID); err != nil {
		return nil, err
	}
	if view.Agenda, err = s.repo.ListAgenda(meetingID); err != nil {
		return nil, err
	}
	if view.Files, err = s.repo.ListAttachments(meetingID); err != nil {
		return nil, err
	}
	if view.Decisions, err = s.repo.ListDecisions(meetingID); err != nil {
		return nil, err
	}

	return view, nil
}

func (s *Service) List(userID, filterType, status string) ([]*ListItem, error) {
	today := time.Now().Format("2006-01-02")
	return s.repo.List(userID, filterType, status, today)
}

// Update applies an allow-listed patch. Only the organizer may mutate a
// meeting, and the duration is never recomputed here.
func (s *Service) Update(meetingID, callerID string, patch map[string]interface{}) (*View, error) {
	meeting, err := s.repo.GetByID(meetingID)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrNotFound
	}
	if meeting.OrganizerID != callerID {
		return nil, ErrForbidden
	}

	if err := s.repo.Update(meetingID, patch); err != nil {
		return nil, err
	}
	return s.Get(meetingID)
}

// Cancel marks the meeting cancelled. Agenda, decisions, files and case
// links are left untouched.
func (s *Service) Cancel(meetingID, callerID string) error {
	meeting, err := s.repo.GetByID(meetingID)
	if err != nil {
		return err
	}
	if meeting == nil {
		return ErrNotFound
	}
	if meeting.OrganizerID != callerID {
		return ErrForbidden
	}

	return s.repo.SetStatus(meetingID, StatusCancelled)
}

func (s *Service) InviteParticipant(meetingID, userID, role string) error {
	meeting, err := s.repo.GetByID(meetingID)
	if err != nil {
		return err
	}
	if meeting == nil {
		return ErrNotFound
	}

	exists, err := s.repo.ParticipantExists(meetingID, userID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateUser
	}

	if role == "" {
		role = RoleAttendee
	}
	return s.repo.InsertParticipant(&Participant{
		ID:             uuid.New().String(),
		MeetingID:      meetingID,
		UserID:         userID,
		Role:           role,
		ResponseStatus: ResponsePending,
	})
}

// RecordResponse updates the caller's own participant row. There is no
// existence check: responding without an invite changes nothing.
func (s *Service) RecordResponse(meetingID, callerID, status string) error {
	switch status {
	case ResponseAccepted, ResponseDeclined, ResponseTentative:
	default:
		return ErrInvalidResponse
	}
	return s.repo.UpdateResponse(meetingID, callerID, status, time.Now().Unix())
}

func (s *Service) RemoveParticipant(meetingID, callerID, targetUserID string) error {
	meeting, err := s.repo.GetByID(meetingID)
	if err != nil {
		return err
	}
	if meeting == nil || meeting.OrganizerID != callerID {
		return ErrForbidden
	}
	return s.repo.DeleteParticipant(meetingID, targetUserID)
}

func (s *Service) AddCase(meetingID, callerID string, input *CaseInput) (*CaseLink, error) {
	exists, err := s.repo.CaseExists(meetingID, input.PatientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateCase
	}

	link := &CaseLink{
		ID:                  uuid.New().String(),
		MeetingID:           meetingID,
		PatientID:           input.PatientID,
		ClinicalQuestion:    input.ClinicalQuestion,
		ReasonForDiscussion: input.ReasonForDiscussion,
		Status:              input.Status,
		AddedBy:             callerID,
	}
	if link.Status == "" {
		link.Status = "new_case"
	}
	if err := s.repo.InsertCase(link); err != nil {
		return nil, err
	}
	return link, nil
}

// RemoveCase is unconditional and idempotent.
func (s *Service) RemoveCase(meetingID, patientID string) error {
	return s.repo.DeleteCase(meetingID, patientID)
}

func (s *Service) AddAgendaItem(meetingID string, input *AgendaItemInput) (*AgendaItem, error) {
	item := &AgendaItem{
		ID:                       uuid.New().String(),
		MeetingID:                meetingID,
		Title:                    input.Title,
		Description:              input.Description,
		OrderIndex:               input.OrderIndex,
		EstimatedDurationMinutes: input.EstimatedDurationMinutes,
		AssignedTo:               input.AssignedTo,
	}
	if err := s.repo.InsertAgendaItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateAgendaItem(meetingID, itemID string, patch map[string]interface{}) (*AgendaItem, error) {
	if err := s.repo.UpdateAgendaItem(meetingID, itemID, patch); err != nil {
		return nil, err
	}
	item, err := s.repo.GetAgendaItem(meetingID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *Service) DeleteAgendaItem(meetingID, itemID string) error {
	return s.repo.DeleteAgendaItem(meetingID, itemID)
}

func (s *Service) AddDecision(meetingID, callerID string, input *DecisionInput) (*Decision, error) {
	decision := &Decision{
		ID:                  uuid.New().String(),
		MeetingID:           meetingID,
		MeetingPatientID:    input.MeetingPatientID,
		AgendaItemID:        input.AgendaItemID,
		DecisionType:        input.DecisionType,
		Title:               input.Title,
		Description:         input.Description,
		FinalAssessment:     input.FinalAssessment,
		ActionPlan:          input.ActionPlan,
		ResponsibleDoctorID: input.ResponsibleDoctorID,
		FollowUpDate:        input.FollowUpDate,
		Priority:            input.Priority,
		Status:              "pending",
		CreatedBy:           callerID,
		CreatedAt:           time.Now().Unix(),
	}
	if decision.DecisionType == "" {
		decision.DecisionType = "other"
	}
	if decision.Priority == "" {
		decision.Priority = "medium"
	}
	if err := s.repo.InsertDecision(decision); err != nil {
		return nil, err
	}
	return decision, nil
}

func (s *Service) UpdateDecision(decisionID string, patch map[string]interface{}) (*Decision, error) {
	if err := s.repo.UpdateDecision(decisionID, patch); err != nil {
		return nil, err
	}
	decision, err := s.repo.GetDecision(decisionID)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, ErrNotFound
	}
	return decision, nil
}

// Stats are the caller-scoped dashboard counters. The active-patient total
// comes from the patient repository and is filled in by the handler.
type Stats struct {
	UpcomingMeetings int `json:"upcoming_meetings"`
	PendingInvites   int `json:"pending_invites"`
	TotalPatients    int `json:"total_patients"`
	MeetingsThisWeek int `json:"meetings_this_week"`
}

func (s *Service) Stats(userID string) (*Stats, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	weekEnd := now.AddDate(0, 0, 7).Format("2006-01-02")

	stats := &Stats{}
	var err error

	if stats.UpcomingMeetings, err = s.repo.CountUpcoming(userID, today); err != nil {
		return nil, err
	}
	if stats.PendingInvites, err = s.repo.CountPendingInvites(userID); err != nil {
		return nil, err
	}
	if stats.MeetingsThisWeek, err = s.repo.CountWithinWeek(userID, today, weekEnd); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Service) MeetingsForPatient(patientID string) ([]map[string]interface{}, error) {
	return s.repo.ListByPatient(patientID)
}
