// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"io"      // Discarded log output
	"testing" // Test helpers

	"finance_tracker/internal/db" // Migrations

	"github.com/glebarez/sqlite" // Pure-Go SQLite dialector for GORM
	"github.com/sirupsen/logrus" // Logging library
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/logger" // GORM log levels
)

// NewDB returns a migrated in-memory database that lives for the duration of t
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // Every connection to :memory: is a separate database
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// QuietLogger returns a logger that writes nowhere
func QuietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
