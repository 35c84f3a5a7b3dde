package document

import "strings"

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

type CreateDocumentDTO struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func (d CreateDocumentDTO) Validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return ValidationError{Msg: "title is required"}
	}
	if len(title) > 255 {
		return ValidationError{Msg: "title must not exceed 255 characters"}
	}
	return nil
}

type AddVersionDTO struct {
	FileName string `json:"file_name"`
}

func (d AddVersionDTO) Validate() error {
	if strings.TrimSpace(d.FileName) == "" {
		return ValidationError{Msg: "file_name is required"}
	}
	return nil
}

type GrantUserAccessDTO struct {
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

func (d GrantUserAccessDTO) Validate() error {
	if d.UserID <= 0 {
		return ValidationError{Msg: "user_id is required"}
	}
	if d.RoleID <= 0 {
		return ValidationError{Msg: "role_id is required"}
	}
	return nil
}

type GrantDepartmentAccessDTO struct {
	DepartmentID int64 `json:"department_id"`
	RoleID       int64 `json:"role_id"`
}

func (d GrantDepartmentAccessDTO) Validate() error {
	if d.DepartmentID <= 0 {
		return ValidationError{Msg: "department_id is required"}
	}
	if d.RoleID <= 0 {
		return ValidationError{Msg: "role_id is required"}
	}
	return nil
}
