package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dev helper: promote a fresh database with an admin account so the admin
// endpoints are reachable without editing rows by hand.
func main() {
	name := flag.String("name", "Admin", "Display name")
	email := flag.String("email", "admin@localhost", "Admin email")
	password := flag.String("password", "changeme", "Admin password")
	dbPath := flag.String("db", "users.sqlite", "SQLite database path")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := &models.User{
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("Created admin user %s (%s) with id %s\n", *name, *email, admin.ID)
}
