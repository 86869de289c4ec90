// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	// RoleAdmin has full CRUD over jobs, applications and users
	RoleAdmin Role = "admin"
	// RoleUser is a regular applicant
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// User is gorm model for account and credential data
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName    string    `gorm:"type:text;not null" json:"fullName"`
	Username    string    `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email       string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	PhoneNumber string    `gorm:"type:text" json:"phoneNumber"`
	Role        Role      `gorm:"type:text;not null;default:'user'" json:"role"`
	CreatedAt   time.Time `gorm:"autoCreateTime;<-:create" json:"createdAt"`
}

// BeforeCreate assigns a fresh UUID so the id does not depend on database extensions.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// EditableUserInfo is part of user profile that owner can edit.
// Empty fields are left untouched.
type EditableUserInfo struct {
	FullName    string `json:"fullName"`
	Username    string `json:"username"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"omitempty,min=8"`
}

// Identity is the caller identity carried by an access token.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}
