package access

type Role struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Role) TableName() string {
	return "roles"
}

type Permission struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (Permission) TableName() string {
	return "permissions"
}

type RolePermission struct {
	RoleID       int64 `gorm:"column:role_id;primaryKey"`
	PermissionID int64 `gorm:"column:permission_id;primaryKey"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// UserRole carries a user's global roles, which determine administrative
// permissions outside any single document.
type UserRole struct {
	UserID int64 `gorm:"column:user_id;primaryKey"`
	RoleID int64 `gorm:"column:role_id;primaryKey"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// UserDocumentAccess grants one user the permissions of a role on one
// document. The composite key blocks duplicate grants.
type UserDocumentAccess struct {
	UserID     int64 `gorm:"column:user_id;primaryKey"`
	DocumentID int64 `gorm:"column:document_id;primaryKey"`
	RoleID     int64 `gorm:"column:role_id;primaryKey"`
}

func (UserDocumentAccess) TableName() string {
	return "user_document_access"
}

// DepartmentDocumentAccess grants every member of a department the
// permissions of a role on one document.
type DepartmentDocumentAccess struct {
	DepartmentID int64 `gorm:"column:department_id;primaryKey"`
	DocumentID   int64 `gorm:"column:document_id;primaryKey"`
	RoleID       int64 `gorm:"column:role_id;primaryKey"`
}

func (DepartmentDocumentAccess) TableName() string {
	return "department_document_access"
}
