package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"mdtboard/internal/platform/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, specialty, organization, phone, role, picture, is_active, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Specialty,
		&user.Organization, &user.Phone, &user.Role, &user.Picture, &user.IsActive, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Create(user *models.User) error {
	_, err := r.db.Exec(`
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Name, user.PasswordHash, user.Specialty,
		user.Organization, user.Phone, user.Role, user.Picture, user.IsActive, user.CreatedAt)
	return err
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	return scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *UserRepository) ListActive() ([]*models.User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Specialty,
			&user.Organization, &user.Phone, &user.Role, &user.Picture, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// userPatchFields is the allow-list for profile updates. Anything else in
// the patch is dropped before a statement is built.
var userPatchFields = map[string]bool{
	"name":         true,
	"specialty":    true,
	"organization": true,
	"phone":        true,
}

func (r *UserRepository) UpdateProfile(id string, patch map[string]interface{}) error {
	assignments := []string{}
	values := []interface{}{}
	for field, value := range patch {
		if userPatchFields[field] {
			assignments = append(assignments, fmt.Sprintf("%s = ?", field))
			values = append(values, value)
		}
	}
	if len(assignments) == 0 {
		return nil
	}

	values = append(values, id)
	_, err := r.db.Exec(fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(assignments, ", ")), values...)
	return err
}

// RefreshFederated updates the attributes the external provider owns.
func (r *UserRepository) RefreshFederated(id, name, picture string) error {
	_, err := r.db.Exec(`UPDATE users SET name = ?, picture = ? WHERE id = ?`, name, picture, id)
	return err
}
