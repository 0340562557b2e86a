// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dealsense/dealsense/internal/domain/entities"
)

// NewTestDB opens an isolated in-memory database with the full schema
// migrated. Each call returns a fresh store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.Client{},
		&entities.Meeting{},
		&entities.Classification{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
