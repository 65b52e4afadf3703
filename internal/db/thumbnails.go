package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"path"
)

// ThumbnailFileName derives the cache filename for a thumbnail URL: the
// final path segment, with query and fragment stripped. Returns "" for
// empty or unusable URLs.
func ThumbnailFileName(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// RecordThumbnail upserts a cached-thumbnail record for the given URL.
func (db *DB) RecordThumbnail(rawURL string) error {
	filename := ThumbnailFileName(rawURL)
	if filename == "" {
		return fmt.Errorf("no filename derivable from url %q", rawURL)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO thumbnails (filename, url) VALUES (?, ?)
			ON CONFLICT(filename) DO UPDATE SET url = excluded.url, fetched_at = CURRENT_TIMESTAMP
		`, filename, rawURL)
		if err != nil {
			return fmt.Errorf("record thumbnail %s: %w", filename, err)
		}
		return nil
	})
}

// DeleteThumbnail removes a cached-thumbnail record by filename. Deleting a
// missing record is not an error.
func (db *DB) DeleteThumbnail(filename string) error {
	return db.withWriteLock(func() error {
		if _, err := db.conn.Exec("DELETE FROM thumbnails WHERE filename = ?", filename); err != nil {
			return fmt.Errorf("delete thumbnail %s: %w", filename, err)
		}
		return nil
	})
}

// ThumbnailExists reports whether a cached-thumbnail record is stored.
func (db *DB) ThumbnailExists(filename string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM thumbnails WHERE filename = ?", filename).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return count > 0, nil
}
