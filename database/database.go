package database

import (
	"Shoebox/internal/config"
	"Shoebox/internal/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupDatabase opens the snapshot catalog. The default sqlite driver
// needs nothing but a path; the postgres driver is configured through
// the usual DB_* environment variables.
func SetupDatabase(configuration *config.Configuration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch configuration.Database.Driver {
	case "postgres":
		dsn, dsnErr := postgresDSN()
		if dsnErr != nil {
			return nil, dsnErr
		}
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(configuration.Database.Path), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", configuration.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.SnapshotRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

func postgresDSN() (string, error) {
	var envVariables = [...]string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_TZ"}
	for _, envVariable := range envVariables {
		if os.Getenv(envVariable) == "" && envVariable != "DB_SSLMODE" {
			return "", fmt.Errorf("%s environment variable not set", envVariable)
		}
		if envVariable == "DB_SSLMODE" && os.Getenv(envVariable) == "" {
			if err := os.Setenv("DB_SSLMODE", "disable"); err != nil {
				return "", err
			}
		}
	}
	return os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}"), nil
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
