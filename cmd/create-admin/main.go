package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/database"

	"github.com/joho/godotenv"
)

// Creates an ADMIN account, or promotes an existing user to ADMIN and
// resets their password. Useful for bootstrapping a fresh deployment or
// recovering a locked-out installation.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email address")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	name := flag.String("name", "Administrator", "display name for a newly created account")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required (or ADMIN_EMAIL / ADMIN_PASSWORD env)")
	}
	if len(*password) < 6 {
		log.Fatal("Password must be at least 6 characters")
	}

	db := database.ConnectDB()
	userRepo := repository.NewUserRepo(db)

	user, err := userRepo.FindByEmail(*email)
	if err != nil {
		user = &model.User{
			Email: *email,
			Name:  *name,
			Role:  model.RoleAdmin,
		}
		if err := user.SetPassword(*password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		fmt.Printf("Created admin user %s\n", *email)
		return
	}

	user.Role = model.RoleAdmin
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := userRepo.Update(user); err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	fmt.Printf("Promoted %s to admin and reset password\n", *email)
}
