package validator

import (
	"errors"
	"net/mail"
)

// IsEmail checks basic address shape. Deliverability is not our problem;
// federated logins arrive with provider-verified addresses anyway.
func IsEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email format")
	}
	return nil
}
