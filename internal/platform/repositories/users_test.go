package repositories

import (
	"testing"
	"time"

	"mdtboard/internal/platform/models"
)

func newTestUser(id, email, name string) *models.User {
	return &models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      "doctor",
		IsActive:  true,
		CreatedAt: time.Now().Unix(),
	}
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	hash := "fake-bcrypt-hash"
	u := newTestUser("u1", "jane@hospital.test", "Dr. Jane")
	u.PasswordHash = &hash
	if err := repo.Create(u); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	byID, err := repo.GetByID("u1")
	if err != nil {
		t.Fatalf("Failed to get by id: %v", err)
	}
	if byID == nil || byID.Email != "jane@hospital.test" {
		t.Errorf("Unexpected user: %+v", byID)
	}
	if byID.PasswordHash == nil || *byID.PasswordHash != hash {
		t.Error("Expected password hash round-trip")
	}

	byEmail, err := repo.GetByEmail("jane@hospital.test")
	if err != nil {
		t.Fatalf("Failed to get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != "u1" {
		t.Errorf("Unexpected user: %+v", byEmail)
	}

	missing, err := repo.GetByEmail("nobody@hospital.test")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for missing user, got %v, %v", missing, err)
	}
}

func TestUserRepository_ListActive(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	inactive := newTestUser("u2", "gone@hospital.test", "Dr. Gone")
	inactive.IsActive = false

	for _, u := range []*models.User{
		newTestUser("u1", "zed@hospital.test", "Dr. Zed"),
		inactive,
		newTestUser("u3", "amy@hospital.test", "Dr. Amy"),
	} {
		if err := repo.Create(u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
	}

	active, err := repo.ListActive()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("Expected 2 active users, got %d", len(active))
	}
	if active[0].Name != "Dr. Amy" {
		t.Errorf("Expected name ordering, got %s first", active[0].Name)
	}
}

func TestUserRepository_UpdateProfileAllowList(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	if err := repo.Create(newTestUser("u1", "jane@hospital.test", "Dr. Jane")); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	err := repo.UpdateProfile("u1", map[string]interface{}{
		"specialty": "radiology",
		"email":     "evil@attacker.test", // not patchable
		"role":      "admin",
	})
	if err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}

	fetched, _ := repo.GetByID("u1")
	if fetched.Specialty != "radiology" {
		t.Errorf("Expected specialty updated, got %s", fetched.Specialty)
	}
	if fetched.Email != "jane@hospital.test" || fetched.Role != "doctor" {
		t.Errorf("Protected fields changed: %+v", fetched)
	}
}

func TestUserRepository_RefreshFederated(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	if err := repo.Create(newTestUser("u1", "jane@hospital.test", "Old Name")); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if err := repo.RefreshFederated("u1", "New Name", "https://img.test/p.png"); err != nil {
		t.Fatalf("Failed to refresh: %v", err)
	}

	fetched, _ := repo.GetByID("u1")
	if fetched.Name != "New Name" || fetched.Picture != "https://img.test/p.png" {
		t.Errorf("Expected refreshed attributes, got %+v", fetched)
	}
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))

	now := time.Now().Unix()
	live := &models.Session{ID: "s1", UserID: "u1", Token: "tok-live", ExpiresAt: now + 3600, CreatedAt: now}
	stale := &models.Session{ID: "s2", UserID: "u1", Token: "tok-stale", ExpiresAt: now - 1, CreatedAt: now - 7200}
	for _, s := range []*models.Session{live, stale} {
		if err := repo.Create(s); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
	}

	found, err := repo.GetActiveByToken("tok-live", now)
	if err != nil {
		t.Fatalf("Failed to look up: %v", err)
	}
	if found == nil || found.UserID != "u1" {
		t.Errorf("Expected live session, got %+v", found)
	}

	expired, err := repo.GetActiveByToken("tok-stale", now)
	if err != nil || expired != nil {
		t.Errorf("Expected expired session to be invisible, got %v, %v", expired, err)
	}

	if err := repo.DeleteByToken("tok-live"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	gone, err := repo.GetActiveByToken("tok-live", now)
	if err != nil || gone != nil {
		t.Errorf("Expected deleted session to be gone, got %v, %v", gone, err)
	}

	// Deleting an unknown token is a no-op.
	if err := repo.DeleteByToken("never-existed"); err != nil {
		t.Errorf("Expected no-op, got %v", err)
	}
}
