package main

import (
	"log"

	"medisos-be/internal/config"
	"medisos-be/internal/model"
	"medisos-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")
	err = gormDB.AutoMigrate(
		&model.User{},
		&model.UserRefreshToken{},
		&model.Question{},
		&model.ResponseRecord{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Psychologist{},
		&model.Report{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations complete.")
}
