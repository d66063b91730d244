package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabaseClient opens the sqlite database behind the stub API and
// migrates the given models.
func NewDatabaseClient(dsn string, models ...any) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	// Every connection to :memory: opens a fresh database.
	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db handle failed: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}
