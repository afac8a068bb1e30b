package models

import (
	"time"
)

// Bookmark is a user's saved reference to a question. The reference is weak:
// deleting a question does not clean up bookmarks pointing at it, and reads
// simply skip dangling rows.
type Bookmark struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}
