package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/flicknote/flick/pkg/models"
)

// NoteHandler serves the per-user note collection.
type NoteHandler struct {
	DB *gorm.DB
}

type noteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type noteRequest struct {
	Content string `json:"content"`
}

func toResponse(n Note) noteResponse {
	return noteResponse{
		ID:        strconv.FormatUint(n.ID, 10),
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func noteIDParam(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// List returns every note the user owns, newest update first.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)

	var notes []Note
	err := h.DB.WithContext(r.Context()).
		Where("user_id = ?", claims.UserID).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list notes")
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toResponse(n))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one note.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	id, ok := noteIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var note Note
	err := h.DB.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, claims.UserID).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get note")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(note))
}

// Create stores a new note and returns its id.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if len(req.Content) > models.MaxContentLength {
		writeError(w, http.StatusUnprocessableEntity, "content too long")
		return
	}

	now := time.Now()
	note := Note{UserID: claims.UserID, Content: req.Content, CreatedAt: now, UpdatedAt: now}
	if err := h.DB.WithContext(r.Context()).Create(&note).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "create note")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": strconv.FormatUint(note.ID, 10)})
}

// Update replaces a note's content and stamps updated_at.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	id, ok := noteIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if len(req.Content) > models.MaxContentLength {
		writeError(w, http.StatusUnprocessableEntity, "content too long")
		return
	}

	res := h.DB.WithContext(r.Context()).
		Model(&Note{}).
		Where("id = ? AND user_id = ?", id, claims.UserID).
		Updates(map[string]any{"content": req.Content, "updated_at": time.Now()})
	if res.Error != nil {
		writeError(w, http.StatusInternalServerError, "update note")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a note. Deleting an already-gone note succeeds, so a
// resumed teardown can re-run over a partially deleted list.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	id, ok := noteIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	err := h.DB.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, claims.UserID).
		Delete(&Note{}).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
