// Package db is the local store for the mirrored collection: a SQLite
// database holding games, collection entries, cached thumbnail records, and
// sync history. All writes go through a cross-process file lock so that a
// background sync and a CLI edit never interleave inside a statement batch.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFile = "collection.db"

// DB wraps the database connection.
type DB struct {
	conn    *sql.DB
	baseDir string
	locker  *writeLocker
}

// Open opens an existing database and runs any pending migrations.
func Open(baseDir string) (*DB, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: run 'meeple init' first")
	}

	return open(baseDir, dbPath)
}

// Initialize creates the database directory and schema.
func Initialize(baseDir string) (*DB, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return open(baseDir, filepath.Join(baseDir, dbFile))
}

func open(baseDir, dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL lets the CLI read while a sync pass writes
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Fallback protection matching the write-lock timeout
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	conn.Exec("PRAGMA synchronous=NORMAL")
	conn.Exec("PRAGMA foreign_keys=ON")

	db := &DB{conn: conn, baseDir: baseDir, locker: newWriteLocker(baseDir)}

	if _, err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the directory holding the database file.
func (db *DB) BaseDir() string {
	return db.baseDir
}

// withWriteLock runs fn while holding the exclusive cross-process write lock.
func (db *DB) withWriteLock(fn func() error) error {
	if err := db.locker.acquire(lockTimeout); err != nil {
		return err
	}
	defer db.locker.release()
	return fn()
}

// parseTime tries common SQLite timestamp formats.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}
