package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/access"
	accessDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/access"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetDocumentOwner(documentID int64) (int64, error) {
	var ownerID int64
	row := r.db.Raw(`SELECT owner_id FROM documents WHERE id = ?`, documentID).Row()
	if err := row.Scan(&ownerID); err != nil {
		if err == sql.ErrNoRows {
			return 0, internal.ErrDocumentNotFound
		}
		return 0, err
	}
	return ownerID, nil
}

func (r *Repository) UserHasDirectGrant(userID, documentID int64, permission string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
	  SELECT 1 FROM user_document_access uda
	  JOIN role_permissions rp ON rp.role_id = uda.role_id
	  JOIN permissions p ON p.id = rp.permission_id
	  WHERE uda.user_id = ? AND uda.document_id = ? AND p.name = ?
	)`
	row := r.db.Raw(query, userID, documentID, permission).Row()
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) UserHasDepartmentGrant(userID, documentID int64, permission string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
	  SELECT 1 FROM department_document_access dda
	  JOIN user_departments ud ON ud.department_id = dda.department_id
	  JOIN role_permissions rp ON rp.role_id = dda.role_id
	  JOIN permissions p ON p.id = rp.permission_id
	  WHERE ud.user_id = ? AND dda.document_id = ? AND p.name = ?
	)`
	row := r.db.Raw(query, userID, documentID, permission).Row()
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) CreateDepartment(name string) (*access.Department, error) {
	record := &userDatamodel.Department{Name: name}
	if err := r.db.Create(record).Error; err != nil {
		return nil, translateWriteErr(err)
	}
	return &access.Department{ID: record.ID, Name: record.Name}, nil
}

func (r *Repository) ListDepartments() ([]*access.Department, error) {
	var records []userDatamodel.Department
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	departments := make([]*access.Department, 0, len(records))
	for _, rec := range records {
		departments = append(departments, &access.Department{ID: rec.ID, Name: rec.Name})
	}
	return departments, nil
}

func (r *Repository) AddUserToDepartment(userID, departmentID int64) error {
	record := &userDatamodel.UserDepartment{UserID: userID, DepartmentID: departmentID}
	if err := r.db.Create(record).Error; err != nil {
		return translateWriteErr(err)
	}
	return nil
}

func (r *Repository) CreateRole(name string) (*access.Role, error) {
	record := &accessDatamodel.Role{Name: name}
	if err := r.db.Create(record).Error; err != nil {
		return nil, translateWriteErr(err)
	}
	return &access.Role{ID: record.ID, Name: record.Name}, nil
}

func (r *Repository) ListRoles() ([]*access.Role, error) {
	var records []accessDatamodel.Role
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	roles := make([]*access.Role, 0, len(records))
	for _, rec := range records {
		roles = append(roles, &access.Role{ID: rec.ID, Name: rec.Name})
	}
	return roles, nil
}

func (r *Repository) AssignRoleToUser(userID, roleID int64) error {
	record := &accessDatamodel.UserRole{UserID: userID, RoleID: roleID}
	if err := r.db.Create(record).Error; err != nil {
		return translateWriteErr(err)
	}
	return nil
}

func (r *Repository) CreatePermission(name, description string) (*access.Permission, error) {
	record := &accessDatamodel.Permission{Name: name, Description: description}
	if err := r.db.Create(record).Error; err != nil {
		return nil, translateWriteErr(err)
	}
	return &access.Permission{ID: record.ID, Name: record.Name, Description: record.Description}, nil
}

func (r *Repository) ListPermissions() ([]*access.Permission, error) {
	var records []accessDatamodel.Permission
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	permissions := make([]*access.Permission, 0, len(records))
	for _, rec := range records {
		permissions = append(permissions, &access.Permission{ID: rec.ID, Name: rec.Name, Description: rec.Description})
	}
	return permissions, nil
}

func (r *Repository) AttachPermissionToRole(roleID, permissionID int64) error {
	record := &accessDatamodel.RolePermission{RoleID: roleID, PermissionID: permissionID}
	if err := r.db.Create(record).Error; err != nil {
		return translateWriteErr(err)
	}
	return nil
}

func (r *Repository) GrantUserAccess(userID, documentID, roleID int64) error {
	record := &accessDatamodel.UserDocumentAccess{
		UserID:     userID,
		DocumentID: documentID,
		RoleID:     roleID,
	}
	if err := r.db.Create(record).Error; err != nil {
		return translateWriteErr(err)
	}
	return nil
}

func (r *Repository) GrantDepartmentAccess(departmentID, documentID, roleID int64) error {
	record := &accessDatamodel.DepartmentDocumentAccess{
		DepartmentID: departmentID,
		DocumentID:   documentID,
		RoleID:       roleID,
	}
	if err := r.db.Create(record).Error; err != nil {
		return translateWriteErr(err)
	}
	return nil
}

// translateWriteErr maps constraint violations to the shared error
// taxonomy: composite-key collisions become duplicate-grant conflicts and
// broken references surface as not-found instead of a raw driver error.
func translateWriteErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateGrant
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return internal.ErrRecordNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint") {
		return internal.ErrDuplicateGrant
	}
	if strings.Contains(msg, "foreign key") || strings.Contains(msg, "FOREIGN KEY") {
		return internal.ErrRecordNotFound
	}
	return err
}
