// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Every OAuth signup starts as a student; admins are promoted
// by another admin or created by the createadmin command.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a Nxt Round account. Users sign in through Google OAuth,
// so GoogleID is the provider identity; it is nullable because bootstrap
// admins are created without one.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GoogleID  *string        `gorm:"uniqueIndex" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Avatar    string         `json:"avatar"`
	Role      string         `gorm:"not null;default:student" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Questions []Question `gorm:"foreignKey:AuthorID" json:"questions,omitempty"`

	// QuestionCount is not persisted; computed for admin listings
	QuestionCount int `gorm:"->" json:"question_count,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the assignable user roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}
