package meetings

import (
	"database/sql"
	"fmt"
	"strings"

	"mdtboard/internal/platform/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const meetingColumns = `id, title, description, meeting_date, start_time, end_time,
	duration_minutes, meeting_type, location, video_link, recurrence_type,
	recurrence_end_date, status, organizer_id, created_at`

func scanMeeting(scan func(dest ...interface{}) error, m *Meeting) error {
	return scan(&m.ID, &m.Title, &m.Description, &m.MeetingDate, &m.StartTime, &m.EndTime,
		&m.DurationMinutes, &m.MeetingType, &m.Location, &m.VideoLink, &m.RecurrenceType,
		&m.RecurrenceEndDate, &m.Status, &m.OrganizerID, &m.CreatedAt)
}

func (r *Repository) Create(m *Meeting) error {
	_, err := r.db.Exec(`
		INSERT INTO meetings (`+meetingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Title, m.Description, m.MeetingDate, m.StartTime, m.EndTime,
		m.DurationMinutes, m.MeetingType, m.Location, m.VideoLink, m.RecurrenceType,
		m.RecurrenceEndDate, m.Status, m.OrganizerID, m.CreatedAt)
	return err
}

func (r *Repository) GetByID(id string) (*Meeting, error) {
	m := &Meeting{}
	err := scanMeeting(r.db.QueryRow(`SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id).Scan, m)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// meetingPatchFields is the update allow-list. Duration is deliberately not
// in it: it is derived once at creation.
var meetingPatchFields = map[string]bool{
	"title":           true,
	"description":     true,
	"meeting_date":    true,
	"start_time":      true,
	"end_time":        true,
	"meeting_type":    true,
	"location":        true,
	"video_link":      true,
	"status":          true,
	"recurrence_type": true,
}

func (r *Repository) Update(id string, patch map[string]interface{}) error {
	assignments := []string{}
	values := []interface{}{}
	for field, value := range patch {
		if meetingPatchFields[field] {
			assignments = append(assignments, fmt.Sprintf("%s = ?", field))
			values = append(values, value)
		}
	}
	if len(assignments) == 0 {
		return nil
	}

	values = append(values, id)
	_, err := r.db.Exec(fmt.Sprintf("UPDATE meetings SET %s WHERE id = ?", strings.Join(assignments, ", ")), values...)
	return err
}

func (r *Repository) SetStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE meetings SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *Repository) GetOrganizer(meetingID string) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	err := r.db.QueryRow(`
		SELECT u.id, u.email, u.name, u.specialty, u.picture
		FROM meetings m JOIN users u ON m.organizer_id = u.id
		WHERE m.id = ?
	`, meetingID).Scan(&p.ID, &p.Email, &p.Name, &p.Specialty, &p.Picture)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// List returns meetings visible to the user as organizer or participant.
// filterType is one of "", "upcoming", "past", "my_invites"; today is the
// caller's current date in ISO form.
func (r *Repository) List(userID, filterType, status, today string) ([]*ListItem, error) {
	var query string
	var args []interface{}

	if filterType == "my_invites" {
		query = `
			SELECT ` + prefixed("m", meetingColumns) + `, u.name, u.specialty, mp.response_status
			FROM meetings m
			JOIN users u ON m.organizer_id = u.id
			JOIN meeting_participants mp ON m.id = mp.meeting_id AND mp.user_id = ?
			WHERE m.status != 'cancelled'
			ORDER BY m.meeting_date DESC, m.start_time DESC`
		args = []interface{}{userID}
	} else {
		query = `
			SELECT ` + prefixed("m", meetingColumns) + `, u.name, u.specialty, ''
			FROM meetings m
			JOIN users u ON m.organizer_id = u.id
			WHERE (m.organizer_id = ? OR m.id IN (
				SELECT meeting_id FROM meeting_participants WHERE user_id = ?
			))`
		args = []interface{}{userID, userID}

		switch filterType {
		case "upcoming":
			query += ` AND m.meeting_date >= ? AND m.status IN ('scheduled', 'in_progress')`
			args = append(args, today)
		case "past":
			query += ` AND (m.meeting_date < ? OR m.status = 'completed')`
			args = append(args, today)
		}
		if status != "" {
			query += ` AND m.status = ?`
			args = append(args, status)
		}
		query += ` ORDER BY m.meeting_date DESC, m.start_time DESC`
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*ListItem{}
	for rows.Next() {
		item := &ListItem{}
		dest := []interface{}{
			&item.ID, &item.Title, &item.Description, &item.MeetingDate, &item.StartTime, &item.EndTime,
			&item.DurationMinutes, &item.MeetingType, &item.Location, &item.VideoLink, &item.RecurrenceType,
			&item.RecurrenceEndDate, &item.Status, &item.OrganizerID, &item.CreatedAt,
			&item.OrganizerName, &item.OrganizerSpecialty, &item.ResponseStatus,
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := r.fillCounts(item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *Repository) fillCounts(item *ListItem) error {
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM meeting_participants WHERE meeting_id = ?`, item.ID).
		Scan(&item.ParticipantCount); err != nil {
		return err
	}
	return r.db.QueryRow(`SELECT COUNT(*) FROM meeting_patients WHERE meeting_id = ?`, item.ID).
		Scan(&item.PatientCount)
}

// ListByPatient returns the meetings a patient has been discussed in,
// newest date first, with the case-link metadata attached.
func (r *Repository) ListByPatient(patientID string) ([]map[string]interface{}, error) {
	rows, err := r.db.Query(`
		SELECT `+prefixed("m", meetingColumns)+`, mp.clinical_question, mp.status
		FROM meetings m
		JOIN meeting_patients mp ON m.id = mp.meeting_id
		WHERE mp.patient_id = ?
		ORDER BY m.meeting_date DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []map[string]interface{}{}
	for rows.Next() {
		m := Meeting{}
		var clinicalQuestion, caseStatus string
		dest := []interface{}{
			&m.ID, &m.Title, &m.Description, &m.MeetingDate, &m.StartTime, &m.EndTime,
			&m.DurationMinutes, &m.MeetingType, &m.Location, &m.VideoLink, &m.RecurrenceType,
			&m.RecurrenceEndDate, &m.Status, &m.OrganizerID, &m.CreatedAt,
			&clinicalQuestion, &caseStatus,
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		results = append(results, map[string]interface{}{
			"id": m.ID, "title": m.Title, "meeting_date": m.MeetingDate,
			"start_time": m.StartTime, "end_time": m.EndTime, "status": m.Status,
			"organizer_id": m.OrganizerID, "clinical_question": clinicalQuestion,
			"case_status": caseStatus,
		})
	}
	return results, rows.Err()
}

// ---- participants ----

func (r *Repository) InsertParticipant(p *Participant) error {
	_, err := r.db.Exec(`
		INSERT INTO meeting_participants (id, meeting_id, user_id, role, response_status)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.MeetingID, p.UserID, p.Role, p.ResponseStatus)
	return err
}

func (r *Repository) ParticipantExists(meetingID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM meeting_participants WHERE meeting_id = ? AND user_id = ?
	`, meetingID, userID).Scan(&count)
	return count > 0, err
}

// UpdateResponse stamps the caller's response. Zero rows affected is not an
// error: responding to a meeting one is not invited to is a no-op.
func (r *Repository) UpdateResponse(meetingID, userID, status string, respondedAt int64) error {
	_, err := r.db.Exec(`
		UPDATE meeting_participants SET response_status = ?, response_date = ?
		WHERE meeting_id = ? AND user_id = ?
	`, status, respondedAt, meetingID, userID)
	return err
}

func (r *Repository) DeleteParticipant(meetingID, userID string) error {
	_, err := r.db.Exec(`
		DELETE FROM meeting_participants WHERE meeting_id = ? AND user_id = ?
	`, meetingID, userID)
	return err
}

func (r *Repository) ListParticipants(meetingID string) ([]*Participant, error) {
	rows, err := r.db.Query(`
		SELECT mp.id, mp.meeting_id, mp.user_id, mp.role, mp.response_status, mp.response_date,
		       u.name, u.email, u.specialty, u.picture
		FROM meeting_participants mp
		JOIN users u ON mp.user_id = u.id
		WHERE mp.meeting_id = ?
	`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []*Participant{}
	for rows.Next() {
		p := &Participant{}
		if err := rows.Scan(&p.ID, &p.MeetingID, &p.UserID, &p.Role, &p.ResponseStatus, &p.ResponseDate,
			&p.Name, &p.Email, &p.Specialty, &p.Picture); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *Repository) CountPendingInvites(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM meeting_participants WHERE user_id = ? AND response_status = 'pending'
	`, userID).Scan(&count)
	return count, err
}

// ---- case links ----

func (r *Repository) InsertCase(c *CaseLink) error {
	_, err := r.db.Exec(`
		INSERT INTO meeting_patients (id, meeting_id, patient_id, clinical_question, reason_for_discussion, status, added_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.MeetingID, c.PatientID, c.ClinicalQuestion, c.ReasonForDiscussion, c.Status, c.AddedBy)
	return err
}

func (r *Repository) CaseExists(meetingID, patientID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM meeting_patients WHERE meeting_id = ? AND patient_id = ?
	`, meetingID, patientID).Scan(&count)
	return count > 0, err
}

func (r *Repository) DeleteCase(meetingID, patientID string) error {
	_, err := r.db.Exec(`
		DELETE FROM meeting_patients WHERE meeting_id = ? AND patient_id = ?
	`, meetingID, patientID)
	return err
}

func (r *Repository) ListCases(meetingID string) ([]*CaseLink, error) {
	rows, err := r.db.Query(`
		SELECT mp.id, mp.meeting_id, mp.patient_id, mp.clinical_question, mp.reason_for_discussion,
		       mp.status, mp.added_by,
		       p.first_name, p.last_name, p.patient_id_number, p.primary_diagnosis,
		       p.department_name, p.date_of_birth, p.gender
		FROM meeting_patients mp
		JOIN patients p ON mp.patient_id = p.id
		WHERE mp.meeting_id = ?
	`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cases := []*CaseLink{}
	for rows.Next() {
		c := &CaseLink{}
		if err := rows.Scan(&c.ID, &c.MeetingID, &c.PatientID, &c.ClinicalQuestion, &c.ReasonForDiscussion,
			&c.Status, &c.AddedBy,
			&c.FirstName, &c.LastName, &c.PatientIDNumber, &c.PrimaryDiagnosis,
			&c.DepartmentName, &c.DateOfBirth, &c.Gender); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// ---- agenda ----

func (r *Repository) InsertAgendaItem(item *AgendaItem) error {
	_, err := r.db.Exec(`
		INSERT INTO agenda_items (id, meeting_id, title, description, order_index, estimated_duration_minutes, assigned_to, is_completed, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.MeetingID, item.Title, item.Description, item.OrderIndex,
		item.EstimatedDurationMinutes, item.AssignedTo, item.IsCompleted, item.Notes)
	return err
}

var agendaPatchFields = map[string]bool{
	"title":                      true,
	"description":                true,
	"order_index":                true,
	"estimated_duration_minutes": true,
	"assigned_to":                true,
	"is_completed":               true,
	"notes":                      true,
}

func (r *Repository) UpdateAgendaItem(meetingID, itemID string, patch map[string]interface{}) error {
	assignments := []string{}
	values := []interface{}{}
	for field, value := range patch {
		if agendaPatchFields[field] {
			assignments = append(assignments, fmt.Sprintf("%s = ?", field))
			values = append(values, value)
		}
	}
	if len(assignments) == 0 {
		return nil
	}

	values = append(values, itemID, meetingID)
	_, err := r.db.Exec(fmt.Sprintf("UPDATE agenda_items SET %s WHERE id = ? AND meeting_id = ?",
		strings.Join(assignments, ", ")), values...)
	return err
}

func (r *Repository) GetAgendaItem(meetingID, itemID string) (*AgendaItem, error) {
	item := &AgendaItem{}
	err := r.db.QueryRow(`
		SELECT id, meeting_id, title, description, order_index, estimated_duration_minutes, assigned_to, is_completed, notes
		FROM agenda_items WHERE id = ? AND meeting_id = ?
	`, itemID, meetingID).Scan(&item.ID, &item.MeetingID, &item.Title, &item.Description, &item.OrderIndex,
		&item.EstimatedDurationMinutes, &item.AssignedTo, &item.IsCompleted, &item.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *Repository) DeleteAgendaItem(meetingID, itemID string) error {
	_, err := r.db.Exec(`DELETE FROM agenda_items WHERE id = ? AND meeting_id = ?`, itemID, meetingID)
	return err
}

// ListAgenda returns agenda items ordered by their order index ascending,
// regardless of insertion order.
func (r *Repository) ListAgenda(meetingID string) ([]*AgendaItem, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.meeting_id, a.title, a.description, a.order_index,
		       a.estimated_duration_minutes, a.assigned_to, a.is_completed, a.notes,
		       COALESCE(u.name, '')
		FROM agenda_items a
		LEFT JOIN users u ON a.assigned_to = u.id
		WHERE a.meeting_id = ?
		ORDER BY a.order_index
	`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*AgendaItem{}
	for rows.Next() {
		item := &AgendaItem{}
		if err := rows.Scan(&item.ID, &item.MeetingID, &item.Title, &item.Description, &item.OrderIndex,
			&item.EstimatedDurationMinutes, &item.AssignedTo, &item.IsCompleted, &item.Notes,
			&item.AssignedToName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ---- decisions ----

func (r *Repository) InsertDecision(d *Decision) error {
	_, err := r.db.Exec(`
		INSERT INTO decision_logs (id, meeting_id, meeting_patient_id, agenda_item_id, decision_type,
			title, description, final_assessment, action_plan, responsible_doctor_id,
			follow_up_date, priority, status, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.MeetingID, d.MeetingPatientID, d.AgendaItemID, d.DecisionType,
		d.Title, d.Description, d.FinalAssessment, d.ActionPlan, d.ResponsibleDoctorID,
		d.FollowUpDate, d.Priority, d.Status, d.CreatedBy, d.CreatedAt)
	return err
}

var decisionPatchFields = map[string]bool{
	"decision_type":         true,
	"title":                 true,
	"description":           true,
	"final_assessment":      true,
	"action_plan":           true,
	"responsible_doctor_id": true,
	"follow_up_date":        true,
	"priority":              true,
	"status":                true,
}

func (r *Repository) UpdateDecision(decisionID string, patch map[string]interface{}) error {
	assignments := []string{}
	values := []interface{}{}
	for field, value := range patch {
		if decisionPatchFields[field] {
			assignments = append(assignments, fmt.Sprintf("%s = ?", field))
			values = append(values, value)
		}
	}
	if len(assignments) == 0 {
		return nil
	}

	values = append(values, decisionID)
	_, err := r.db.Exec(fmt.Sprintf("UPDATE decision_logs SET %s WHERE id = ?",
		strings.Join(assignments, ", ")), values...)
	return err
}

func (r *Repository) GetDecision(decisionID string) (*Decision, error) {
	d := &Decision{}
	err := r.db.QueryRow(`
		SELECT id, meeting_id, meeting_patient_id, agenda_item_id, decision_type, title, description,
		       final_assessment, action_plan, responsible_doctor_id, follow_up_date, priority, status,
		       created_by, created_at
		FROM decision_logs WHERE id = ?
	`, decisionID).Scan(&d.ID, &d.MeetingID, &d.MeetingPatientID, &d.AgendaItemID, &d.DecisionType,
		&d.Title, &d.Description, &d.FinalAssessment, &d.ActionPlan, &d.ResponsibleDoctorID,
		&d.FollowUpDate, &d.Priority, &d.Status, &d.CreatedBy, &d.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// ListDecisions returns decision logs newest first.
func (r *Repository) ListDecisions(meetingID string) ([]*Decision, error) {
	rows, err := r.db.Query(`
		SELECT id, meeting_id, meeting_patient_id, agenda_item_id, decision_type, title, description,
		       final_assessment, action_plan, responsible_doctor_id, follow_up_date, priority, status,
		       created_by, created_at
		FROM decision_logs WHERE meeting_id = ?
		ORDER BY created_at DESC
	`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	decisions := []*Decision{}
	for rows.Next() {
		d := &Decision{}
		if err := rows.Scan(&d.ID, &d.MeetingID, &d.MeetingPatientID, &d.AgendaItemID, &d.DecisionType,
			&d.Title, &d.Description, &d.FinalAssessment, &d.ActionPlan, &d.ResponsibleDoctorID,
			&d.FollowUpDate, &d.Priority, &d.Status, &d.CreatedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// ---- attachments (read side of the aggregate view) ----

// ListAttachments returns the meeting's file rows newest first, joined with
// the uploader's display name. The write side lives in engine/files.
func (r *Repository) ListAttachments(meetingID string) ([]*AttachmentRow, error) {
	rows, err := r.db.Query(`
		SELECT f.id, f.meeting_id, f.file_name, f.original_name, f.file_type,
		       f.mime_type, f.file_size, f.uploaded_by, COALESCE(u.name, ''), f.created_at
		FROM file_attachments f
		LEFT JOIN users u ON f.uploaded_by = u.id
		WHERE f.meeting_id = ?
		ORDER BY f.created_at DESC
	`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []*AttachmentRow{}
	for rows.Next() {
		f := &AttachmentRow{}
		if err := rows.Scan(&f.ID, &f.MeetingID, &f.FileName, &f.OriginalName, &f.FileType,
			&f.MimeType, &f.FileSize, &f.UploadedBy, &f.UploaderName, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// ---- dashboard counts ----

func (r *Repository) CountUpcoming(userID, today string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM meetings
		WHERE (organizer_id = ? OR id IN (SELECT meeting_id FROM meeting_participants WHERE user_id = ?))
		AND meeting_date >= ? AND status IN ('scheduled', 'in_progress')
	`, userID, userID, today).Scan(&count)
	return count, err
}

func (r *Repository) CountWithinWeek(userID, today, weekEnd string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM meetings
		WHERE (organizer_id = ? OR id IN (SELECT meeting_id FROM meeting_participants WHERE user_id = ?))
		AND meeting_date BETWEEN ? AND ?
	`, userID, userID, today, weekEnd).Scan(&count)
	return count, err
}

// prefixed qualifies each column in a comma-separated list with a table
// alias for join queries.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
