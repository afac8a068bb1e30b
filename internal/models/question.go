package models

import (
	"time"

	"gorm.io/gorm"
)

// Interview round types.
const (
	RoundAptitude     = "Aptitude"
	RoundCoding       = "Coding"
	RoundHR           = "HR"
	RoundSystemDesign = "System Design"
	RoundTechnical    = "Technical"
	RoundBehavioral   = "Behavioral"
)

// Question difficulties.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question represents a crowdsourced interview question.
type Question struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Title      string   `gorm:"not null" json:"title"`
	Content    string   `gorm:"type:text;not null" json:"content"`
	Answer     string   `gorm:"type:text" json:"answer"`
	CompanyID  uint     `gorm:"not null;index" json:"company_id"`
	Company    *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Role       string   `gorm:"not null" json:"role"`
	RoundType  string   `gorm:"not null" json:"round_type"`
	Tags       []string `gorm:"serializer:json;type:text" json:"tags"`
	Difficulty string   `gorm:"not null;default:Medium" json:"difficulty"`
	AuthorID   uint     `gorm:"not null;index" json:"author_id"`
	Author     *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Views counts reads: once per authenticated viewer (tracked through
	// QuestionViewer rows), every read for anonymous visitors.
	Views       int `gorm:"not null;default:0" json:"views"`
	ReportCount int `gorm:"not null;default:0" json:"report_count"`

	// UpvoteCount is not persisted; computed at query time
	UpvoteCount int `gorm:"->" json:"upvote_count"`
	// DownvoteCount is not persisted; computed at query time
	DownvoteCount int `gorm:"->" json:"downvote_count"`
	// UserVote is the requesting user's vote on this question: 1, -1 or 0 (computed)
	UserVote int `gorm:"->" json:"user_vote"`
	// Bookmarked indicates whether the requesting user bookmarked this question (computed)
	Bookmarked bool `gorm:"->" json:"bookmarked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidRoundType reports whether rt is an allowed interview round type.
func ValidRoundType(rt string) bool {
	switch rt {
	case RoundAptitude, RoundCoding, RoundHR, RoundSystemDesign, RoundTechnical, RoundBehavioral:
		return true
	}
	return false
}

// ValidDifficulty reports whether d is an allowed difficulty.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
