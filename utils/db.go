package utils

import (
	"os"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pixelgram-app/pixelgram-backend/model"
)

// GetDBConnection connects to the Postgres instance configured by
// DATABASE_URL. TranslateError is on so that unique index violations
// surface as gorm.ErrDuplicatedKey, the like toggle depends on it.
func GetDBConnection() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to connect to postgres")
	}
	return db, nil
}

// GetTestDBConnection opens a throwaway sqlite database for unit tests.
// Pass a file path under t.TempDir so concurrent connections observe the
// same database.
func GetTestDBConnection(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to open sqlite test database")
	}
	return db, nil
}

// DatabaseSetupAndMigration migrates all tables the server uses.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
	)
}
