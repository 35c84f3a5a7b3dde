package postgres

import (
	"errors"
	"strings"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var u user.User
	err := r.db.Raw(`
		SELECT id, email, name, created_at
		FROM users
		WHERE id = ?
	`, userID).Scan(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, internal.ErrRecordNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetDepartments(userID int64) ([]string, error) {
	var names []string
	err := r.db.Raw(`
		SELECT d.name
		FROM departments d
		JOIN user_departments ud ON ud.department_id = d.id
		WHERE ud.user_id = ?
		ORDER BY d.name
	`, userID).Scan(&names).Error
	return names, err
}

func (r *UserRepository) GetPasswordHash(userID int64) (string, error) {
	var hash string
	err := r.db.Raw(`SELECT password_hash FROM users WHERE id = ?`, userID).Scan(&hash).Error
	if err != nil {
		return "", err
	}
	if hash == "" {
		return "", internal.ErrRecordNotFound
	}
	return hash, nil
}

func (r *UserRepository) UpdateProfile(userID int64, name, email *string) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if email != nil {
		updates["email"] = *email
	}
	if len(updates) == 0 {
		return nil
	}

	err := r.db.Table("users").Where("id = ?", userID).Updates(updates).Error
	if err != nil && isDuplicateKeyErr(err) {
		return internal.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	return r.db.Table("users").Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
