package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/config"
)

// NewSQLiteConnection opens a SQLite database for local development. The URL
// is a file path or ":memory:".
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(cfg.URL), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// SQLite serializes writers; a single connection also keeps ":memory:" databases alive.
	sqlDB.SetMaxOpenConns(1)

	zap.L().Info("Database connection established",
		zap.String("driver", config.DriverSQLite),
		zap.String("path", cfg.URL),
	)

	return &Database{db: db, driver: config.DriverSQLite}, nil
}
