package session

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flicknote/flick/pkg/models"
	"github.com/flicknote/flick/pkg/repository"
)

// Bootstrap establishes the session's initial note list from the
// repository and returns a store that already satisfies the
// never-empty invariant.
//
// An empty repository gets one blank note. Otherwise, if the newest
// fetched note already has content, one blank note is created and
// placed ahead of the fetched list so the editor opens on a fresh
// page; if the newest note is already blank it is reused as-is, which
// keeps sessions from accumulating leading blank notes.
func Bootstrap(ctx context.Context, repo repository.Repository, userID string, log *logrus.Logger) (*Store, error) {
	notes, err := repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	if len(notes) == 0 || !notes[0].IsBlank() {
		id, err := repo.Create(ctx, userID, "")
		if err != nil {
			return nil, fmt.Errorf("create initial note: %w", err)
		}
		now := time.Now()
		blank := models.Note{ID: id, CreatedAt: now, UpdatedAt: now}
		notes = append([]models.Note{blank}, notes...)
	}

	return NewStore(repo, userID, notes, log), nil
}
