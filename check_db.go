package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"backend/internal/app/ds"
	"backend/internal/app/dsn"
)

func main() {
	_ = godotenv.Load()

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var centers []ds.Center
	err = db.Find(&centers).Error
	if err != nil {
		log.Fatal("Failed to get centers:", err)
	}

	fmt.Println("Centers in database:")
	for _, center := range centers {
		photo := "NULL"
		if center.PhotoURL != nil {
			photo = *center.PhotoURL
		}
		fmt.Printf("ID: %d, Name: %s, Active: %t, Photo: %s\n",
			center.ID, center.Name, center.IsActive, photo)
	}
}
