package models

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleSecretary  = "secretary"
	RoleITAdmin    = "it_admin"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepository interface {
	Save(user *User) error
	GetByID(id int) (*User, error)
	GetByEmail(email string) (*User, error)
}
