package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
)

// User is the profile projection served from /users/me. The password hash
// stays in the repository layer.
type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Departments []string `json:"departments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
