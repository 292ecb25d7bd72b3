package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"mdtboard/internal/platform/models"
)

type PatientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

const patientColumns = `id, patient_id_number, first_name, last_name, date_of_birth, gender,
	email, phone, address, primary_diagnosis, allergies, current_medications,
	department_name, department_provider_name, notes, is_active, created_by, created_at`

func scanPatient(scan func(dest ...interface{}) error) (*models.Patient, error) {
	p := &models.Patient{}
	err := scan(&p.ID, &p.PatientIDNumber, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender,
		&p.Email, &p.Phone, &p.Address, &p.PrimaryDiagnosis, &p.Allergies, &p.CurrentMedications,
		&p.DepartmentName, &p.DepartmentProviderName, &p.Notes, &p.IsActive, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PatientRepository) Create(p *models.Patient) error {
	_, err := r.db.Exec(`
		INSERT INTO patients (`+patientColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.PatientIDNumber, p.FirstName, p.LastName, p.DateOfBirth, p.Gender,
		p.Email, p.Phone, p.Address, p.PrimaryDiagnosis, p.Allergies, p.CurrentMedications,
		p.DepartmentName, p.DepartmentProviderName, p.Notes, p.IsActive, p.CreatedBy, p.CreatedAt)
	return err
}

func (r *PatientRepository) GetByID(id string) (*models.Patient, error) {
	row := r.db.QueryRow(`SELECT `+patientColumns+` FROM patients WHERE id = ?`, id)
	p, err := scanPatient(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// List returns active patients, optionally narrowed by a free-text search
// over name and patient number, and by department.
func (r *PatientRepository) List(search, department string) ([]*models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE is_active = 1`
	args := []interface{}{}

	if search != "" {
		query += ` AND (first_name LIKE ? OR last_name LIKE ? OR patient_id_number LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if department != "" {
		query += ` AND department_name = ?`
		args = append(args, department)
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := []*models.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows.Scan)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

var patientPatchFields = map[string]bool{
	"first_name":               true,
	"last_name":                true,
	"date_of_birth":            true,
	"gender":                   true,
	"email":                    true,
	"phone":                    true,
	"address":                  true,
	"primary_diagnosis":        true,
	"allergies":                true,
	"current_medications":      true,
	"department_name":          true,
	"department_provider_name": true,
	"notes":                    true,
}

func (r *PatientRepository) Update(id string, patch map[string]interface{}) error {
	assignments := []string{}
	values := []interface{}{}
	for field, value := range patch {
		if patientPatchFields[field] {
			assignments = append(assignments, fmt.Sprintf("%s = ?", field))
			values = append(values, value)
		}
	}
	if len(assignments) == 0 {
		return nil
	}

	values = append(values, id)
	_, err := r.db.Exec(fmt.Sprintf("UPDATE patients SET %s WHERE id = ?", strings.Join(assignments, ", ")), values...)
	return err
}

// SoftDelete flips the active flag. Patient rows are never hard-deleted.
func (r *PatientRepository) SoftDelete(id string) error {
	_, err := r.db.Exec(`UPDATE patients SET is_active = 0 WHERE id = ?`, id)
	return err
}

func (r *PatientRepository) CountActive() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM patients WHERE is_active = 1`).Scan(&count)
	return count, err
}
