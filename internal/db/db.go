package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/punchcard/internal/models"
)

// DB wraps the underlying connection. Every store operation is a method on
// this type so the ingestion engine and the query surface can share one
// injected handle.
type DB struct {
	gorm *gorm.DB
}

// Open sets up the database connection and runs migrations
func Open(dbPath string) (*DB, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL keeps readers unblocked while an ingestion transaction commits
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run auto-migrations
	if err := gdb.AutoMigrate(&models.Employee{}, &models.Punch{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{gorm: gdb}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
