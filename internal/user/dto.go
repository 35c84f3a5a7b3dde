package user

import (
	"net/mail"
	"strings"
)

type UpdateProfileDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (d *UpdateProfileDTO) Validate() error {
	if d.Name == nil && d.Email == nil {
		return &ValidationError{Msg: "nothing to update"}
	}
	if d.Name != nil {
		trimmed := strings.TrimSpace(*d.Name)
		if trimmed == "" {
			return &ValidationError{Msg: "name must not be empty"}
		}
		d.Name = &trimmed
	}
	if d.Email != nil {
		if _, err := mail.ParseAddress(*d.Email); err != nil {
			return &ValidationError{Msg: "invalid email format"}
		}
	}
	return nil
}

type UpdatePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d *UpdatePasswordDTO) Validate() error {
	if d.CurrentPassword == "" {
		return &ValidationError{Msg: "current_password is required"}
	}
	if len(d.NewPassword) < 8 {
		return &ValidationError{Msg: "new_password must be at least 8 characters"}
	}
	return nil
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
