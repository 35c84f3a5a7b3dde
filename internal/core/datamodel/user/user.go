package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

type Department struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Department) TableName() string {
	return "departments"
}

// UserDepartment links users to departments. The composite primary key
// prevents duplicate memberships.
type UserDepartment struct {
	UserID       int64 `gorm:"column:user_id;primaryKey"`
	DepartmentID int64 `gorm:"column:department_id;primaryKey"`
}

func (UserDepartment) TableName() string {
	return "user_departments"
}
