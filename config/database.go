package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/models"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

// ConnectDatabase opens the database selected by DB_DRIVER: postgres
// in production, sqlite for local development.
func ConnectDatabase() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver := os.Getenv("DB_DRIVER"); driver {
	case "", "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
		dialector = postgres.Open(dsn)
	case "sqlite":
		path := os.Getenv("DB_FILE_PATH")
		if path == "" {
			path = "./data/quillhub.db"
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// InitDB connects and migrates; failure to do either is fatal.
func InitDB() *gorm.DB {
	db, err := ConnectDatabase()
	if err != nil {
		logging.L().Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := MigrateModels(db); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to migrate database")
	}

	return db
}

// MigrateModels creates or updates the schema for every model.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.Block{},
		&models.ProfileView{},
		&models.Reaction{},
		&models.PostView{},
	)
}
