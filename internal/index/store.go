// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists embedded content units in SQLite and serves
// similarity search over them. The Manager owns index creation, reuse,
// and destruction; the retrieval pipeline holds a read-only Store.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/biotrek-engine/pkg/types"
)

// ErrIndexUnavailable marks a persisted index that exists but cannot be
// opened or read. It is surfaced as a fatal initialization error, never
// repaired silently.
var ErrIndexUnavailable = errors.New("persisted index unavailable")

// Store is a persisted collection of (ContentUnit, vector) pairs.
type Store struct {
	db   *sql.DB
	path string
}

// Hit is a similarity search result.
type Hit struct {
	Unit  types.ContentUnit
	Score float64
}

// Create initializes a fresh index database at path, recording the vector
// dimension in the manifest. The parent directory is created if needed.
func Create(path string, dims int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(dims); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Open opens an existing index database at path and validates its schema.
// A database that cannot be read wraps ErrIndexUnavailable.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	s := &Store{db: db, path: path}
	if _, err := s.Dimensions(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the on-disk location of the index.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema(dims int) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS units (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			text TEXT NOT NULL,
			title TEXT NOT NULL,
			link TEXT NOT NULL,
			pub_date TEXT NOT NULL,
			embedding BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS index_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	meta := map[string]string{
		"dimensions": strconv.Itoa(dims),
		"built_at":   time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := s.db.Exec(
			`INSERT INTO index_meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, k, v,
		); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
	}
	return nil
}

// Dimensions returns the vector dimension recorded in the manifest.
func (s *Store) Dimensions() (int, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM index_meta WHERE key = 'dimensions'`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading manifest: %w", err)
	}
	dims, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing manifest dimensions: %w", err)
	}
	return dims, nil
}

// Count returns the number of persisted units.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM units`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting units: %w", err)
	}
	return n, nil
}

// Upsert persists units with their vectors in one transaction. Insertion
// order defines the stable tie-break order for search.
func (s *Store) Upsert(ctx context.Context, units []types.ContentUnit, vectors [][]float32) error {
	if len(units) != len(vectors) {
		return fmt.Errorf("unit/vector count mismatch: %d vs %d", len(units), len(vectors))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO units (id, text, title, link, pub_date, embedding)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, u := range units {
		if _, err := stmt.ExecContext(ctx,
			u.ID, u.Text, u.Meta.Title, u.Meta.Link, u.Meta.PubDate, encodeVector(vectors[i]),
		); err != nil {
			return fmt.Errorf("inserting unit %s: %w", u.ID, err)
		}
	}
	return tx.Commit()
}

// Search returns up to k units whose cosine similarity to query meets or
// exceeds threshold, ordered by descending score. Equal scores keep
// insertion order (first indexed wins). Zero matches is an empty result,
// not an error.
func (s *Store) Search(ctx context.Context, query []float32, k int, threshold float64) ([]Hit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, title, link, pub_date, embedding FROM units ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			u    types.ContentUnit
			blob []byte
		)
		if err := rows.Scan(&u.ID, &u.Text, &u.Meta.Title, &u.Meta.Link, &u.Meta.PubDate, &blob); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}

		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding vector for %s: %w", u.ID, err)
		}
		score, err := cosineSimilarity(query, vec)
		if err != nil {
			return nil, fmt.Errorf("scoring %s: %w", u.ID, err)
		}
		if score >= threshold {
			hits = append(hits, Hit{Unit: u, Score: score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}
