// Package main provides admin account management for Nxt Round.
//
// Admins created here have no Google identity yet; the OAuth callback links
// the Google account to the row by email on their first sign-in.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Kavi981/Nxt-Round/internal/config"
	"github.com/Kavi981/Nxt-Round/internal/database"
	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/validation"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/createadmin create <name> <email>  - Create a new admin account")
		fmt.Println("  go run ./cmd/createadmin promote <email>        - Promote an existing user to admin")
		fmt.Println("  go run ./cmd/createadmin list                   - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/createadmin create <name> <email>")
			os.Exit(1)
		}
		createAdmin(db, os.Args[2], os.Args[3])

	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/createadmin promote <email>")
			os.Exit(1)
		}
		promoteToAdmin(db, os.Args[2])

	case "list":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func createAdmin(db *gorm.DB, name, email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validation.Email(email) {
		fmt.Printf("Invalid email address: %s\n", email)
		os.Exit(1)
	}

	var existing models.User
	err := db.Where("LOWER(email) = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("User with email %s already exists (role: %s)\n", email, existing.Role)
		fmt.Println("Use the promote command to grant an existing user the admin role.")
		os.Exit(1)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Database error: %v", err)
	}

	user := models.User{
		Name:  strings.TrimSpace(name),
		Email: email,
		Role:  models.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("Admin account created:")
	fmt.Printf("  Name:  %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Println("The Google account with this email will be linked on first sign-in.")
}

func promoteToAdmin(db *gorm.DB, email string) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := db.Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with email %s not found\n", email)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsAdmin() {
		fmt.Printf("User %s (%s) is already an admin\n", user.Name, user.Email)
		return
	}

	user.Role = models.RoleAdmin
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to promote user: %v", err)
	}
	fmt.Printf("User %s (%s) is now an admin\n", user.Name, user.Email)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("role = ?", models.RoleAdmin).Order("created_at ASC").Find(&admins).Error; err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts found.")
		return
	}

	fmt.Printf("Found %d admin(s):\n", len(admins))
	for _, admin := range admins {
		linked := "not linked"
		if admin.GoogleID != nil {
			linked = "linked"
		}
		fmt.Printf("  #%d %s <%s> (Google account %s)\n", admin.ID, admin.Name, admin.Email, linked)
	}
}
