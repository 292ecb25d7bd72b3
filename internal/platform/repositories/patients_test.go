package repositories

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mdtboard/internal/platform/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT,
		specialty TEXT DEFAULT '',
		organization TEXT DEFAULT '',
		phone TEXT DEFAULT '',
		role TEXT DEFAULT 'doctor',
		picture TEXT DEFAULT '',
		is_active INTEGER DEFAULT 1,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE user_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_token TEXT UNIQUE NOT NULL,
		expires_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE patients (
		id TEXT PRIMARY KEY,
		patient_id_number TEXT DEFAULT '',
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT,
		gender TEXT DEFAULT '',
		email TEXT DEFAULT '',
		phone TEXT DEFAULT '',
		address TEXT DEFAULT '',
		primary_diagnosis TEXT DEFAULT '',
		allergies TEXT DEFAULT '',
		current_medications TEXT DEFAULT '',
		department_name TEXT DEFAULT '',
		department_provider_name TEXT DEFAULT '',
		notes TEXT DEFAULT '',
		is_active INTEGER DEFAULT 1,
		created_by TEXT DEFAULT '',
		created_at INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

func newTestPatient(id, first, last, number, department string) *models.Patient {
	return &models.Patient{
		ID:              id,
		PatientIDNumber: number,
		FirstName:       first,
		LastName:        last,
		DepartmentName:  department,
		IsActive:        true,
		CreatedAt:       time.Now().Unix(),
	}
}

func TestPatientRepository_CreateAndGet(t *testing.T) {
	repo := NewPatientRepository(setupTestDB(t))

	p := newTestPatient("p1", "Jane", "Doe", "MRN-001", "oncology")
	p.PrimaryDiagnosis = "NSCLC stage III"
	if err := repo.Create(p); err != nil {
		t.Fatalf("Failed to create patient: %v", err)
	}

	fetched, err := repo.GetByID("p1")
	if err != nil {
		t.Fatalf("Failed to get patient: %v", err)
	}
	if fetched == nil || fetched.LastName != "Doe" || fetched.PrimaryDiagnosis != "NSCLC stage III" {
		t.Errorf("Unexpected patient: %+v", fetched)
	}

	missing, err := repo.GetByID("nope")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for missing patient, got %v, %v", missing, err)
	}
}

func TestPatientRepository_ListFilters(t *testing.T) {
	repo := NewPatientRepository(setupTestDB(t))

	for _, p := range []*models.Patient{
		newTestPatient("p1", "Jane", "Doe", "MRN-001", "oncology"),
		newTestPatient("p2", "John", "Smith", "MRN-002", "cardiology"),
		newTestPatient("p3", "Janet", "Brown", "MRN-003", "oncology"),
	} {
		if err := repo.Create(p); err != nil {
			t.Fatalf("Failed to create patient: %v", err)
		}
	}

	all, err := repo.List("", "")
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 patients, got %d", len(all))
	}
	// Ordered by last name.
	if all[0].LastName != "Brown" {
		t.Errorf("Expected Brown first, got %s", all[0].LastName)
	}

	byName, err := repo.List("Jan", "")
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("Expected 2 matches for Jan, got %d", len(byName))
	}

	byNumber, err := repo.List("MRN-002", "")
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(byNumber) != 1 || byNumber[0].ID != "p2" {
		t.Errorf("Expected p2 for MRN-002, got %+v", byNumber)
	}

	byDept, err := repo.List("", "oncology")
	if err != nil {
		t.Fatalf("Failed to filter: %v", err)
	}
	if len(byDept) != 2 {
		t.Errorf("Expected 2 oncology patients, got %d", len(byDept))
	}
}

func TestPatientRepository_SoftDelete(t *testing.T) {
	repo := NewPatientRepository(setupTestDB(t))

	if err := repo.Create(newTestPatient("p1", "Jane", "Doe", "MRN-001", "")); err != nil {
		t.Fatalf("Failed to create patient: %v", err)
	}
	if err := repo.SoftDelete("p1"); err != nil {
		t.Fatalf("Failed to soft delete: %v", err)
	}

	// The row survives but drops out of listings and the active count.
	fetched, err := repo.GetByID("p1")
	if err != nil {
		t.Fatalf("Failed to get patient: %v", err)
	}
	if fetched == nil || fetched.IsActive {
		t.Errorf("Expected inactive patient row, got %+v", fetched)
	}

	listed, err := repo.List("", "")
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("Expected empty listing, got %d", len(listed))
	}

	count, err := repo.CountActive()
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 active, got %d", count)
	}
}

func TestPatientRepository_UpdateAllowList(t *testing.T) {
	repo := NewPatientRepository(setupTestDB(t))

	p := newTestPatient("p1", "Jane", "Doe", "MRN-001", "")
	p.CreatedBy = "user-1"
	if err := repo.Create(p); err != nil {
		t.Fatalf("Failed to create patient: %v", err)
	}

	err := repo.Update("p1", map[string]interface{}{
		"primary_diagnosis": "updated diagnosis",
		"patient_id_number": "MRN-999", // not patchable
		"created_by":        "attacker",
		"is_active":         false,
	})
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	fetched, _ := repo.GetByID("p1")
	if fetched.PrimaryDiagnosis != "updated diagnosis" {
		t.Errorf("Expected diagnosis updated, got %s", fetched.PrimaryDiagnosis)
	}
	if fetched.PatientIDNumber != "MRN-001" || fetched.CreatedBy != "user-1" || !fetched.IsActive {
		t.Errorf("Protected fields changed: %+v", fetched)
	}

	// A patch with no allowed fields is a no-op, not an error.
	if err := repo.Update("p1", map[string]interface{}{"created_by": "x"}); err != nil {
		t.Errorf("Expected no-op, got %v", err)
	}
}
