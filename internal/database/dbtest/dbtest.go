// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/readtrack/internal/database"
)

// New returns a migrated SQLite database in a temp dir, closed when the test
// ends.
func New(t testing.TB) *database.Database {
	t.Helper()

	db, err := database.New(context.Background(), database.Options{
		URL:      URL(t),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// URL returns a connection string for a fresh SQLite file.
func URL(t testing.TB) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), "test.db")
}

// Scope begins a scope that is rolled back when the test ends unless the
// test commits it first.
func Scope(t testing.TB, db *database.Database) *database.Scope {
	t.Helper()

	s, err := db.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { s.Rollback() })
	return s
}

// Commit begins a scope, runs fn and commits.
func Commit(t testing.TB, db *database.Database, fn func(s *database.Scope)) {
	t.Helper()

	s := Scope(t, db)
	fn(s)
	require.NoError(t, s.Commit())
}
