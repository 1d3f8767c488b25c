package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"student-console/internal/config"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// schema is applied on every start. AUTOINCREMENT keeps internal ids from
// being reused after the highest row is deleted.
const schema = `
CREATE TABLE IF NOT EXISTS students (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	father_name TEXT,
	gender TEXT,
	course TEXT,
	dob TEXT,
	father_phone TEXT,
	student_phone TEXT,
	address TEXT,
	admission_date TEXT,
	expell_date TEXT,
	remarks TEXT,
	gpa REAL,
	enrollment_date TEXT
)`

// Initialize opens the SQLite file at cfg.Path, creating it and the
// students table when absent. It is called once by the entry point.
func Initialize(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*bun.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	db.AddQueryHook(NewQueryHook(logger))

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database ready", "path", cfg.Path)
	return db, nil
}

// Open creates the bun handle without touching the file.
func Open(cfg config.DatabaseConfig) (*bun.DB, error) {
	busyTimeout := cfg.BusyTimeoutMs
	if busyTimeout == 0 {
		busyTimeout = 5000
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", cfg.Path, busyTimeout)

	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single user, single process: one connection keeps every statement
	// on the same SQLite handle.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func Migrate(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create students table: %w", err)
	}
	return nil
}

func Close(db *bun.DB) {
	if db != nil {
		db.Close()
	}
}
