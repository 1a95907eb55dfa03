// Package cache is the opt-in generation cache: a SQLite table mapping each
// patched source file (by path and content hash) to its generated copy.
// A hit lets the orchestrator skip re-patching an unchanged file on the
// next invocation. The cache is advisory — every failure degrades to a
// miss, never to a build failure.
package cache

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

const schema = `
CREATE TABLE IF NOT EXISTS generated (
	source_path    TEXT PRIMARY KEY,
	source_hash    TEXT NOT NULL,
	generated_path TEXT NOT NULL,
	generated_hash TEXT NOT NULL,
	updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Entry is one cached source → generated file mapping.
type Entry struct {
	SourcePath    string
	SourceHash    string
	GeneratedPath string
	GeneratedHash string
}

// Cache wraps the SQLite generation cache.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	c := &Cache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return c, nil
}

// OpenMemory opens an in-memory cache (for testing).
func OpenMemory() (*Cache, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	// An in-memory database lives per connection; pin the pool to one.
	db.SetMaxOpenConns(1)
	c := &Cache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return c, nil
}

func (c *Cache) initSchema() error {
	_, err := c.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the generated path recorded for a source file, verifying
// that the recorded source hash still matches and that the generated file
// is present and unmodified. Any mismatch or I/O problem is a miss.
func (c *Cache) Lookup(sourcePath, sourceHash string) (string, bool) {
	var e Entry
	err := c.db.QueryRow(
		"SELECT source_hash, generated_path, generated_hash FROM generated WHERE source_path = ?",
		sourcePath,
	).Scan(&e.SourceHash, &e.GeneratedPath, &e.GeneratedHash)
	if err != nil {
		return "", false
	}
	if e.SourceHash != sourceHash {
		return "", false
	}
	genHash, err := HashFile(e.GeneratedPath)
	if err != nil || genHash != e.GeneratedHash {
		return "", false
	}
	return e.GeneratedPath, true
}

// Record upserts a batch of entries within one transaction. Entries with an
// empty GeneratedHash get it computed first; hashing is parallelized across
// CPU cores.
func (c *Cache) Record(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := fillGeneratedHashes(entries); err != nil {
		return err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO generated (source_path, source_hash, generated_path, generated_hash, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(source_path) DO UPDATE SET
			source_hash = excluded.source_hash,
			generated_path = excluded.generated_path,
			generated_hash = excluded.generated_hash,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.SourcePath, e.SourceHash, e.GeneratedPath, e.GeneratedHash); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", e.SourcePath, err)
		}
	}
	return tx.Commit()
}

// fillGeneratedHashes computes missing generated-file hashes in parallel.
func fillGeneratedHashes(entries []Entry) error {
	numWorkers := runtime.NumCPU()
	if numWorkers > len(entries) {
		numWorkers = len(entries)
	}

	g := new(errgroup.Group)
	g.SetLimit(numWorkers)
	for i := range entries {
		if entries[i].GeneratedHash != "" {
			continue
		}
		g.Go(func() error {
			hash, err := HashFile(entries[i].GeneratedPath)
			if err != nil {
				return fmt.Errorf("hash %s: %w", entries[i].GeneratedPath, err)
			}
			entries[i].GeneratedHash = hash
			return nil
		})
	}
	return g.Wait()
}

// HashBytes returns the xxh3 hex digest of a byte slice.
func HashBytes(data []byte) string {
	h := xxh3.New()
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HashFile returns the xxh3 hex digest of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
