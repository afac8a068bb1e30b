// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var roundTypes = []string{
	models.RoundAptitude, models.RoundCoding, models.RoundHR,
	models.RoundSystemDesign, models.RoundTechnical, models.RoundBehavioral,
}

var difficulties = []string{
	models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard,
}

var companySizes = []string{
	models.CompanySizeStartup, models.CompanySizeSmall, models.CompanySizeMedium,
	models.CompanySizeLarge, models.CompanySizeEnterprise,
}

var interviewRoles = []string{
	"Software Engineer", "SDE", "Frontend Engineer", "Backend Engineer",
	"Data Scientist", "DevOps Engineer", "Product Manager", "QA Engineer",
}

var questionTags = []string{
	"arrays", "strings", "dynamic-programming", "graphs", "sql",
	"system-design", "behavioral", "concurrency", "api-design", "caching",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadBack returns a timestamp up to maxDays in the past so seeded data
// produces non-empty growth series.
func (f *Factory) spreadBack(maxDays int) time.Time {
	days := f.rand.Intn(maxDays)
	return time.Now().
		Add(-time.Duration(days) * 24 * time.Hour).
		Add(-time.Duration(f.rand.Intn(24)) * time.Hour)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	googleID := gofakeit.UUID()
	user := &models.User{
		GoogleID: &googleID,
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%d.%s", gofakeit.Number(100, 999), gofakeit.Email()),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:     models.RoleStudent,
	}
	user.CreatedAt = f.spreadBack(90)

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCompany constructs and persists a sample company. Its question
// counter starts at zero; CreateQuestion maintains it.
func (f *Factory) CreateCompany(overrides ...func(*models.Company)) (*models.Company, error) {
	name := gofakeit.Company()
	company := &models.Company{
		Name:        fmt.Sprintf("%s %d", name, gofakeit.Number(10, 99)),
		Description: gofakeit.Sentence(12),
		Logo:        fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		Website:     fmt.Sprintf("https://%s.example.com", strings.ToLower(gofakeit.LetterN(8))),
		Industry:    gofakeit.BuzzWord(),
		Size:        companySizes[f.rand.Intn(len(companySizes))],
	}
	for _, override := range overrides {
		override(company)
	}
	if err := f.db.Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// CreateQuestion constructs and persists a sample question and bumps the
// company counter the way the application's repository does.
func (f *Factory) CreateQuestion(author *models.User, company *models.Company, overrides ...func(*models.Question)) (*models.Question, error) {
	tags := make([]string, 0, 3)
	for _, i := range f.rand.Perm(len(questionTags))[:f.rand.Intn(3)+1] {
		tags = append(tags, questionTags[i])
	}

	question := &models.Question{
		Title:      strings.TrimSuffix(gofakeit.Question(), "?") + "?",
		Content:    gofakeit.Paragraph(1, 3, 8, "\n"),
		CompanyID:  company.ID,
		Role:       interviewRoles[f.rand.Intn(len(interviewRoles))],
		RoundType:  roundTypes[f.rand.Intn(len(roundTypes))],
		Difficulty: difficulties[f.rand.Intn(len(difficulties))],
		Tags:       tags,
		AuthorID:   author.ID,
	}
	question.CreatedAt = f.spreadBack(60)
	if f.rand.Intn(2) == 0 {
		question.Answer = gofakeit.Paragraph(1, 2, 6, "\n")
	}

	for _, override := range overrides {
		override(question)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return tx.Model(&models.Company{}).
			Where("id = ?", question.CompanyID).
			UpdateColumn("question_count", gorm.Expr("question_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// CreateVote persists a vote; duplicate (user, question) pairs are skipped.
func (f *Factory) CreateVote(user *models.User, question *models.Question, value int) error {
	vote := &models.Vote{UserID: user.ID, QuestionID: question.ID, Value: value}
	return f.db.Where(models.Vote{UserID: user.ID, QuestionID: question.ID}).
		FirstOrCreate(vote).Error
}

// CreateBookmark persists a bookmark; duplicates are skipped.
func (f *Factory) CreateBookmark(user *models.User, question *models.Question) error {
	bookmark := &models.Bookmark{UserID: user.ID, QuestionID: question.ID}
	return f.db.Where(models.Bookmark{UserID: user.ID, QuestionID: question.ID}).
		FirstOrCreate(bookmark).Error
}

// CreateActivity persists an audit log entry for the given action.
func (f *Factory) CreateActivity(user *models.User, action, target string, targetID uint) error {
	activity := &models.Activity{
		UserID:    user.ID,
		Action:    action,
		Target:    target,
		IPAddress: gofakeit.IPv4Address(),
		UserAgent: gofakeit.UserAgent(),
		CreatedAt: f.spreadBack(30),
	}
	if targetID != 0 {
		activity.TargetID = &targetID
	}
	return f.db.Create(activity).Error
}
