package models

import (
	"time"
)

// Company sizes.
const (
	CompanySizeStartup    = "Startup"
	CompanySizeSmall      = "Small"
	CompanySizeMedium     = "Medium"
	CompanySizeLarge      = "Large"
	CompanySizeEnterprise = "Enterprise"
)

// Company represents an employer that questions are filed under.
// QuestionCount is a denormalized counter maintained in the same
// transaction as question creation and deletion.
type Company struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"unique;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Logo          string    `json:"logo"`
	Website       string    `json:"website"`
	Industry      string    `json:"industry"`
	Size          string    `gorm:"not null;default:Medium" json:"size"`
	QuestionCount int       `gorm:"not null;default:0" json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// RecentQuestions is not persisted; computed for the admin listing
	RecentQuestions int `gorm:"->" json:"recent_questions,omitempty"`
}

// ValidCompanySize reports whether size is an allowed company size.
func ValidCompanySize(size string) bool {
	switch size {
	case CompanySizeStartup, CompanySizeSmall, CompanySizeMedium, CompanySizeLarge, CompanySizeEnterprise:
		return true
	}
	return false
}
