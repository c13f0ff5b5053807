package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-phoneshop-pos/internal/model"
	"go-phoneshop-pos/internal/repository"
	"go-phoneshop-pos/pkg/database"

	"github.com/joho/godotenv"
)

// Resets a user's password from the command line. Useful when the admin
// account gets locked out and there is nobody left who can log in.
func main() {
	email := flag.String("email", "", "email of the account to reset")
	password := flag.String("password", "", "new password to set")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: reset-password -email user@example.com -password newpass")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	userRepo := repository.NewUserRepo(db)

	user, err := userRepo.FindByEmail(*email)
	if err != nil {
		log.Fatalf("user %s not found: %v", *email, err)
	}

	tmp := &model.User{}
	if err := tmp.SetPassword(*password); err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if err := userRepo.UpdatePassword(user.ID, tmp.Password); err != nil {
		log.Fatalf("failed to update password: %v", err)
	}

	fmt.Printf("password for %s has been reset\n", *email)
}
