package repositories

import (
	"database/sql"

	"mdtboard/internal/platform/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *models.Session) error {
	_, err := r.db.Exec(`
		INSERT INTO user_sessions (id, user_id, session_token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, session.ID, session.UserID, session.Token, session.ExpiresAt, session.CreatedAt)
	return err
}

// GetActiveByToken resolves a session that has not expired yet. Expired rows
// are invisible to lookup but stay in the table.
func (r *SessionRepository) GetActiveByToken(token string, now int64) (*models.Session, error) {
	session := &models.Session{}
	err := r.db.QueryRow(`
		SELECT id, user_id, session_token, expires_at, created_at
		FROM user_sessions WHERE session_token = ? AND expires_at > ?
	`, token, now).Scan(&session.ID, &session.UserID, &session.Token, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) DeleteByToken(token string) error {
	_, err := r.db.Exec(`DELETE FROM user_sessions WHERE session_token = ?`, token)
	return err
}
