package access

import (
	"github.com/frahmantamala/document-management/internal/core/common/validation"
)

type CreateDepartmentDTO struct {
	Name string `json:"name"`
}

func (d CreateDepartmentDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("name", d.Name).Required().MaxLength(100)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type AddDepartmentMemberDTO struct {
	UserID int64 `json:"user_id"`
}

func (d AddDepartmentMemberDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("user_id", d.UserID).Required().PositiveInt()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type CreateRoleDTO struct {
	Name string `json:"name"`
}

func (d CreateRoleDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("name", d.Name).Required().MaxLength(100)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type CreatePermissionDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CreatePermissionDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("name", d.Name).Required().MaxLength(100)
	validator.Field("description", d.Description).MaxLength(255)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type AttachPermissionDTO struct {
	PermissionID int64 `json:"permission_id"`
}

func (d AttachPermissionDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("permission_id", d.PermissionID).Required().PositiveInt()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type AssignRoleDTO struct {
	UserID int64 `json:"user_id"`
}

func (d AssignRoleDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("user_id", d.UserID).Required().PositiveInt()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
