package repository

import (
	"context"
	"testing"

	"github.com/Kavi981/Nxt-Round/internal/database"
	"github.com/Kavi981/Nxt-Round/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	gid := "google-" + email
	user := &models.User{GoogleID: &gid, Name: name, Email: email, Role: models.RoleStudent}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createTestCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()
	company := &models.Company{Name: name, Size: models.CompanySizeMedium}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("create company %s: %v", name, err)
	}
	return company
}

func createTestQuestion(t *testing.T, db *gorm.DB, author *models.User, company *models.Company, title string) *models.Question {
	t.Helper()
	question := &models.Question{
		Title:      title,
		Content:    "content of " + title,
		CompanyID:  company.ID,
		Role:       "SDE",
		RoundType:  models.RoundCoding,
		Difficulty: models.DifficultyMedium,
		AuthorID:   author.ID,
	}
	repo := NewQuestionRepository(db)
	if err := repo.Create(context.Background(), question); err != nil {
		t.Fatalf("create question %s: %v", title, err)
	}
	return question
}
