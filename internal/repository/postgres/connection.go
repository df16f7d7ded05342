package postgres

import (
	"strings"

	"github.com/mika/reminders-web/internal/domain"
	"github.com/mika/reminders-web/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the configured database and migrates the schema.
// A postgres DSN selects postgres; an empty or file: DSN falls back to
// a local sqlite database so the server runs without a postgres
// instance.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch {
	case databaseURL == "":
		db, err = gorm.Open(sqlite.Open("reminders.db"), gormConfig)
	case strings.HasPrefix(databaseURL, "file:"):
		db, err = gorm.Open(sqlite.Open(databaseURL), gormConfig)
	default:
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all persisted types.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Reminder{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Session:  NewSessionRepository(db),
		Reminder: NewReminderRepository(db),
	}
}
