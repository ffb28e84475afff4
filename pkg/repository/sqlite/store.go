package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flicknote/flick/pkg/models"
	"github.com/flicknote/flick/pkg/repository"
)

// Store is a local, on-disk Repository backend. It serves offline and
// development sessions with the same interface the remote store exposes.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the note database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open note db: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id);
	CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(user_id, updated_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init note db schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func newNoteID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fall back to a timestamp id; collisions within the same
		// nanosecond are not a realistic concern for a local store.
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// List returns the user's notes ordered by updated_at descending.
func (s *Store) List(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, created_at, updated_at FROM notes
		 WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, repository.WrapErr("list", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, repository.WrapErr("list", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.WrapErr("list", err)
	}
	return notes, nil
}

// Get returns a single note or repository.ErrNotFound.
func (s *Store) Get(ctx context.Context, userID, noteID string) (models.Note, error) {
	var n models.Note
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content, created_at, updated_at FROM notes
		 WHERE user_id = ? AND id = ?`, userID, noteID).
		Scan(&n.ID, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Note{}, repository.WrapErr("get", err)
	}
	return n, nil
}

// Create stores a new note and returns its id.
func (s *Store) Create(ctx context.Context, userID, content string) (string, error) {
	if len(content) > models.MaxContentLength {
		return "", repository.WrapErr("create", fmt.Errorf("content exceeds %d characters", models.MaxContentLength))
	}
	id := newNoteID()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`, id, userID, content, now, now)
	if err != nil {
		return "", repository.WrapErr("create", err)
	}
	return id, nil
}

// Update replaces a note's content and stamps updated_at.
func (s *Store) Update(ctx context.Context, userID, noteID, content string) error {
	if len(content) > models.MaxContentLength {
		return repository.WrapErr("update", fmt.Errorf("content exceeds %d characters", models.MaxContentLength))
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET content = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		content, time.Now().UTC(), userID, noteID)
	if err != nil {
		return repository.WrapErr("update", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a note. Deleting a missing note succeeds; deletion is
// idempotent per item so a resumed teardown can re-run safely.
func (s *Store) Delete(ctx context.Context, userID, noteID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE user_id = ? AND id = ?`, userID, noteID)
	return repository.WrapErr("delete", err)
}
