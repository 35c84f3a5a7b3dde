package auth

import (
	"net/mail"
	"strings"
)

// LoginDTO is the transport shape for login requests. Login arrives
// form-encoded; the handler also accepts the OAuth2 password-flow field
// name "username" for the email.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return ValidationError{Msg: "email is not a valid address"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	return nil
}
