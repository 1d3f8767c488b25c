package testdb

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"student-console/internal/config"
	"student-console/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// SQLiteStore wraps a throwaway database file under t.TempDir().
type SQLiteStore struct {
	DB   *bun.DB
	Path string
}

// SetupSQLite creates one store per top-level test. Subtests share it and
// call CleanupTables first, so they cannot run in parallel.
//
// Usage:
//
//	func TestMyRepo(t *testing.T) {
//	    store := testdb.SetupSQLite(t)
//
//	    t.Run("Case", func(t *testing.T) {
//	        testdb.CleanupTables(t, store.DB, "students")
//	        // ... test
//	    })
//	}
func SetupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "students.db")
	database, err := db.Initialize(context.Background(), config.DatabaseConfig{Path: path}, DiscardLogger())
	require.NoError(t, err)

	store := &SQLiteStore{DB: database, Path: path}
	t.Cleanup(func() { db.Close(store.DB) })

	return store
}

// Reopen closes the handle and opens the same file again, the way a later
// run of the program would.
func (s *SQLiteStore) Reopen(t *testing.T) {
	t.Helper()

	db.Close(s.DB)
	database, err := db.Initialize(context.Background(), config.DatabaseConfig{Path: s.Path}, DiscardLogger())
	require.NoError(t, err)
	s.DB = database
}

// CleanupTables empties the tables and resets their AUTOINCREMENT counters.
func CleanupTables(t *testing.T, database *bun.DB, tables ...string) {
	t.Helper()

	ctx := context.Background()

	for _, table := range tables {
		_, err := database.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err, "failed to clear table: %s", table)

		_, err = database.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table)
		require.NoError(t, err, "failed to reset sequence: %s", table)
	}
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
