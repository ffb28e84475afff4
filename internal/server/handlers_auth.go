package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login, and account deletion.
type AuthHandler struct {
	DB           *gorm.DB
	JWT          *JWT
	ReauthWindow time.Duration
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Register creates an account and returns its first session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash password")
		return
	}

	user := User{Email: req.Email, PasswordHash: string(hash), CreatedAt: time.Now()}
	if err := h.DB.WithContext(r.Context()).Create(&user).Error; err != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	token, err := h.JWT.Sign(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign token")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var user User
	err := h.DB.WithContext(r.Context()).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup user")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.JWT.Sign(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// DeleteAccount removes the user record and whatever notes remain.
// It requires a recently issued token: a stale session gets the
// reauth_required marker so the client can prompt for a fresh sign-in
// instead of a blind retry.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	if time.Since(claims.IssuedAt) > h.ReauthWindow {
		writeError(w, http.StatusUnauthorized, "reauth_required")
		return
	}

	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", claims.UserID).Delete(&Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&User{}, claims.UserID).Error
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
