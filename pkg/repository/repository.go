package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/flicknote/flick/pkg/models"
)

// ErrNotFound is returned when a note id does not exist for the user.
var ErrNotFound = errors.New("note not found")

// ErrReauthRequired marks an identity-deletion failure caused by a
// stale session. The remedy is to sign in again and retry, unlike
// transient failures.
var ErrReauthRequired = errors.New("re-authentication required")

// Repository is the remote document store holding a user's notes,
// ordered by update time, newest first.
type Repository interface {
	// List returns all notes for the user, ordered by UpdatedAt descending.
	List(ctx context.Context, userID string) ([]models.Note, error)
	// Get returns a single note, or ErrNotFound.
	Get(ctx context.Context, userID, noteID string) (models.Note, error)
	// Create stores a new note and returns its repository-assigned id.
	Create(ctx context.Context, userID, content string) (string, error)
	// Update replaces a note's content; the store stamps UpdatedAt.
	Update(ctx context.Context, userID, noteID, content string) error
	// Delete removes a note. Deleting an already-deleted note is not an error.
	Delete(ctx context.Context, userID, noteID string) error
}

// Identity deletes the signed-in user's identity record.
type Identity interface {
	DeleteCurrentIdentity(ctx context.Context) error
}

// Error wraps a failed repository operation with the operation name.
// Callers only distinguish success, failure, and ErrReauthRequired;
// the cause is carried for logs.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WrapErr builds a *Error unless err is nil.
func WrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
