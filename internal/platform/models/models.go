package models

type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	PasswordHash *string `json:"-"`
	Specialty    string  `json:"specialty,omitempty"`
	Organization string  `json:"organization,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Role         string  `json:"role"`
	Picture      string  `json:"picture,omitempty"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    int64   `json:"created_at"`
}

// Public strips everything that should not leave the server when a user is
// embedded in another resource (meeting organizer, participant rows).
func (u *User) Public() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Specialty: u.Specialty,
		Picture:   u.Picture,
	}
}

type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	Picture   string `json:"picture,omitempty"`
}

type Session struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Token     string `json:"-"`
	ExpiresAt int64  `json:"expires_at"`
	CreatedAt int64  `json:"created_at"`
}

type Patient struct {
	ID                     string  `json:"id"`
	PatientIDNumber        string  `json:"patient_id_number,omitempty"`
	FirstName              string  `json:"first_name"`
	LastName               string  `json:"last_name"`
	DateOfBirth            *string `json:"date_of_birth,omitempty"`
	Gender                 string  `json:"gender,omitempty"`
	Email                  string  `json:"email,omitempty"`
	Phone                  string  `json:"phone,omitempty"`
	Address                string  `json:"address,omitempty"`
	PrimaryDiagnosis       string  `json:"primary_diagnosis,omitempty"`
	Allergies              string  `json:"allergies,omitempty"`
	CurrentMedications     string  `json:"current_medications,omitempty"`
	DepartmentName         string  `json:"department_name,omitempty"`
	DepartmentProviderName string  `json:"department_provider_name,omitempty"`
	Notes                  string  `json:"notes,omitempty"`
	IsActive               bool    `json:"is_active"`
	CreatedBy              string  `json:"created_by,omitempty"`
	CreatedAt              int64   `json:"created_at"`
}
