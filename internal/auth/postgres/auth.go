package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/frahmantamala/document-management/internal/auth"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, auth.ErrUserNotFound
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetUserWithPermissions(email string) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, name FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	// Global permissions come from the user's roles, not from any
	// per-document grant.
	permQuery := `SELECT p.name
	             FROM permissions p
	             JOIN role_permissions rp ON p.id = rp.permission_id
	             JOIN user_roles ur ON ur.role_id = rp.role_id
	             WHERE ur.user_id = ?`

	rows, err := r.db.Raw(permQuery, user.ID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var permName string
		if err := rows.Scan(&permName); err != nil {
			return nil, err
		}
		permissions = append(permissions, permName)
	}

	user.Permissions = permissions
	return &user, nil
}

func (r *Repository) CreateUser(name, email, passwordHash string) (*auth.UserInfo, error) {
	record := &userDatamodel.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}

	if err := r.db.Create(record).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, auth.ErrDuplicateEmail
		}
		return nil, err
	}

	return &auth.UserInfo{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		CreatedAt: record.CreatedAt,
	}, nil
}

// isDuplicateKeyErr matches unique-constraint violations across drivers.
// Concurrent registrations race on users.email; the loser must see a
// duplicate, not a generic failure.
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
