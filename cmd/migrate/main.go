package main

import (
	"finance_tracker/internal/config" // Custom import path (Config)
	"finance_tracker/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.LoadConfig() // Load configuration
	gdb, err := db.Open(cfg, log)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("%v", err) // Log fatal error if migration fails
	}
	log.Info("Migration completed.") // Log successful migration
}
