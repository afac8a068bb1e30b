// Command seed populates the database with demo data for development.
package main

import (
	"flag"
	"log"

	"github.com/Kavi981/Nxt-Round/internal/config"
	"github.com/Kavi981/Nxt-Round/internal/database"
	"github.com/Kavi981/Nxt-Round/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of users to create")
	numCompanies := flag.Int("companies", 12, "Number of companies to create")
	numQuestions := flag.Int("questions", 150, "Number of questions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Populate(*numUsers, *numCompanies, *numQuestions); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
}
