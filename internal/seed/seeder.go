package seed

import (
	"log"

	"github.com/Kavi981/Nxt-Round/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.Activity{}, &models.Bookmark{}, &models.QuestionViewer{},
		&models.Vote{}, &models.Question{}, &models.Company{}, &models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Populate creates a connected data set: users posting questions across
// companies, voting, bookmarking and leaving an activity trail.
func (s *Seeder) Populate(numUsers, numCompanies, numQuestions int) error {
	log.Printf("Seeding %d users, %d companies, %d questions...", numUsers, numCompanies, numQuestions)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		if err := s.factory.CreateActivity(user, models.ActionRegister, models.TargetSystem, 0); err != nil {
			return err
		}
		users = append(users, user)
	}

	companies := make([]*models.Company, 0, numCompanies)
	for i := 0; i < numCompanies; i++ {
		company, err := s.factory.CreateCompany()
		if err != nil {
			return err
		}
		companies = append(companies, company)
	}

	questions := make([]*models.Question, 0, numQuestions)
	for i := 0; i < numQuestions; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		company := companies[s.factory.rand.Intn(len(companies))]
		question, err := s.factory.CreateQuestion(author, company)
		if err != nil {
			return err
		}
		if err := s.factory.CreateActivity(author, models.ActionPostQuestion, models.TargetQuestion, question.ID); err != nil {
			return err
		}
		questions = append(questions, question)
	}

	// Engagement: each question picks up a handful of votes and bookmarks.
	for _, question := range questions {
		voters := s.factory.rand.Intn(len(users) + 1)
		for _, i := range s.factory.rand.Perm(len(users))[:voters] {
			value := models.VoteUp
			if s.factory.rand.Intn(4) == 0 {
				value = models.VoteDown
			}
			if err := s.factory.CreateVote(users[i], question, value); err != nil {
				return err
			}
		}
		if s.factory.rand.Intn(3) == 0 {
			reader := users[s.factory.rand.Intn(len(users))]
			if err := s.factory.CreateBookmark(reader, question); err != nil {
				return err
			}
			if err := s.factory.CreateActivity(reader, models.ActionBookmarkQuestion, models.TargetQuestion, question.ID); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d users, %d companies, %d questions", len(users), len(companies), len(questions))
	return nil
}
