package models

import (
	"time"
)

// Activity actions.
const (
	ActionLogin            = "login"
	ActionRegister         = "register"
	ActionPostQuestion     = "post_question"
	ActionEditQuestion     = "edit_question"
	ActionDeleteQuestion   = "delete_question"
	ActionBookmarkQuestion = "bookmark_question"
	ActionViewQuestion     = "view_question"
	ActionAdminApprove     = "admin_approve"
	ActionAdminReject      = "admin_reject"
	ActionAdminDelete      = "admin_delete"
)

// Activity targets.
const (
	TargetQuestion = "question"
	TargetCompany  = "company"
	TargetUser     = "user"
	TargetSystem   = "system"
)

// Activity is an append-only audit log entry recorded alongside tracked
// actions. Rows are never updated or deleted by the application.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_activity_user_created" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action    string    `gorm:"not null;index:idx_activity_action_created" json:"action"`
	Target    string    `gorm:"not null;index:idx_activity_target_created" json:"target"`
	TargetID  *uint     `json:"target_id,omitempty"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `gorm:"index:idx_activity_user_created;index:idx_activity_action_created;index:idx_activity_target_created" json:"created_at"`
}

// ValidActivityAction reports whether action is a known activity action.
func ValidActivityAction(action string) bool {
	switch action {
	case ActionLogin, ActionRegister, ActionPostQuestion, ActionEditQuestion,
		ActionDeleteQuestion, ActionBookmarkQuestion, ActionViewQuestion,
		ActionAdminApprove, ActionAdminReject, ActionAdminDelete:
		return true
	}
	return false
}

// ValidActivityTarget reports whether target is a known activity target kind.
func ValidActivityTarget(target string) bool {
	switch target {
	case TargetQuestion, TargetCompany, TargetUser, TargetSystem:
		return true
	}
	return false
}
