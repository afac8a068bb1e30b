package models

import (
	"time"
)

// Vote values.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote records a user's vote on a question. One row per user per question,
// so a user can never sit in both the upvote and downvote sets at once.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_vote_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_vote_user_question" json:"question_id"`
	Value      int       `gorm:"not null" json:"value"`
	CreatedAt  time.Time `json:"created_at"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Question Question `gorm:"foreignKey:QuestionID" json:"-"`
}

// QuestionViewer marks that a user has already been counted in a question's
// view total. Membership here caps the increment at once per viewer.
type QuestionViewer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_viewer_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_viewer_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}
