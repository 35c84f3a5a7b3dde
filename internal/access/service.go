package access

import (
	"fmt"
	"log/slog"
)

// Repository defines the lookups backing access resolution and grant
// management. Link tables are resolved with explicit queries, never by
// walking an object graph.
type Repository interface {
	GetDocumentOwner(documentID int64) (int64, error)
	UserHasDirectGrant(userID, documentID int64, permission string) (bool, error)
	UserHasDepartmentGrant(userID, documentID int64, permission string) (bool, error)

	CreateDepartment(name string) (*Department, error)
	ListDepartments() ([]*Department, error)
	AddUserToDepartment(userID, departmentID int64) error

	CreateRole(name string) (*Role, error)
	ListRoles() ([]*Role, error)
	AssignRoleToUser(userID, roleID int64) error

	CreatePermission(name, description string) (*Permission, error)
	ListPermissions() ([]*Permission, error)
	AttachPermissionToRole(roleID, permissionID int64) error

	GrantUserAccess(userID, documentID, roleID int64) error
	GrantDepartmentAccess(departmentID, documentID, roleID int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CanAccess reports whether the user holds the required permission on the
// document. Grant paths are additive: ownership, a direct user grant, or a
// departmental grant each suffice on their own, and nothing can revoke a
// path once one matches. Absence of every path means deny.
func (s *Service) CanAccess(userID, documentID int64, permission string) (bool, error) {
	ownerID, err := s.repo.GetDocumentOwner(documentID)
	if err != nil {
		return false, err
	}

	// Owners hold every permission on their own documents even without a
	// grant row.
	if ownerID == userID {
		return true, nil
	}

	direct, err := s.repo.UserHasDirectGrant(userID, documentID, permission)
	if err != nil {
		return false, fmt.Errorf("direct grant lookup: %w", err)
	}
	if direct {
		return true, nil
	}

	departmental, err := s.repo.UserHasDepartmentGrant(userID, documentID, permission)
	if err != nil {
		return false, fmt.Errorf("department grant lookup: %w", err)
	}
	if departmental {
		return true, nil
	}

	s.logger.Debug("access denied",
		"user_id", userID,
		"document_id", documentID,
		"permission", permission)
	return false, nil
}

func (s *Service) CreateDepartment(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateDepartment(dto.Name)
}

func (s *Service) ListDepartments() ([]*Department, error) {
	return s.repo.ListDepartments()
}

func (s *Service) AddUserToDepartment(departmentID int64, dto AddDepartmentMemberDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	return s.repo.AddUserToDepartment(dto.UserID, departmentID)
}

func (s *Service) CreateRole(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateRole(dto.Name)
}

func (s *Service) ListRoles() ([]*Role, error) {
	return s.repo.ListRoles()
}

func (s *Service) AssignRoleToUser(roleID int64, dto AssignRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	return s.repo.AssignRoleToUser(dto.UserID, roleID)
}

func (s *Service) CreatePermission(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreatePermission(dto.Name, dto.Description)
}

func (s *Service) ListPermissions() ([]*Permission, error) {
	return s.repo.ListPermissions()
}

func (s *Service) AttachPermissionToRole(roleID int64, dto AttachPermissionDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	return s.repo.AttachPermissionToRole(roleID, dto.PermissionID)
}

// GrantUserAccess records that a user holds a role's permissions on a
// document.
func (s *Service) GrantUserAccess(userID, documentID, roleID int64) error {
	if err := s.repo.GrantUserAccess(userID, documentID, roleID); err != nil {
		return err
	}
	s.logger.Info("user access granted",
		"user_id", userID,
		"document_id", documentID,
		"role_id", roleID)
	return nil
}

// GrantDepartmentAccess records that a department holds a role's
// permissions on a document.
func (s *Service) GrantDepartmentAccess(departmentID, documentID, roleID int64) error {
	if err := s.repo.GrantDepartmentAccess(departmentID, documentID, roleID); err != nil {
		return err
	}
	s.logger.Info("department access granted",
		"department_id", departmentID,
		"document_id", documentID,
		"role_id", roleID)
	return nil
}
