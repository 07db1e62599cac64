package models

import "time"

// Role values for User.Role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account that can authenticate against the API.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(30);not null" validate:"required,min=3,max=30"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null" validate:"required,min=6"` // bcrypt hash, never serialized
	Role      string    `json:"role" gorm:"type:varchar(10);default:user" validate:"omitempty,oneof=admin user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
