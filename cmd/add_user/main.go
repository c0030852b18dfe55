package main

import (
	"flag"
	"log"

	"github.com/rmcmauricio/gestaocondominio-sub000/app/config"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/database"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/models"
	"github.com/rmcmauricio/gestaocondominio-sub000/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "email of the new user")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required")
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if err := database.CreateUser(db, user); err != nil {
		log.Fatal("Failed to create user: ", err)
	}

	log.Printf("User %s created with id %s", user.Email, user.ID)
}
