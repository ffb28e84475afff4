package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flicknote/flick/pkg/models"
	"github.com/flicknote/flick/pkg/repository"
)

// Client talks to the hosted note store and identity provider over
// HTTP. It implements both repository.Repository and
// repository.Identity; the user is identified by the bearer token, so
// the userID parameter is accepted for interface symmetry but the
// server scopes every call to the token's subject.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

// New builds a client for the server at baseURL using token for auth.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      &http.Client{},
	}
}

type noteDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.hc.Do(req)
}

// apiError turns a non-2xx response into an error, preserving the
// server's error string when it sent one.
func apiError(resp *http.Response) error {
	var e errorDTO
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e); err == nil && e.Error != "" {
		if resp.StatusCode == http.StatusUnauthorized && e.Error == "reauth_required" {
			return repository.ErrReauthRequired
		}
		return fmt.Errorf("server: %s (status %d)", e.Error, resp.StatusCode)
	}
	return fmt.Errorf("server: status %d", resp.StatusCode)
}

// List returns all notes, newest update first.
func (c *Client) List(ctx context.Context, userID string) ([]models.Note, error) {
	resp, err := c.do(ctx, http.MethodGet, "/notes", nil)
	if err != nil {
		return nil, repository.WrapErr("list", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, repository.WrapErr("list", apiError(resp))
	}

	var dtos []noteDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, repository.WrapErr("list", err)
	}

	notes := make([]models.Note, 0, len(dtos))
	for _, d := range dtos {
		notes = append(notes, models.Note(d))
	}
	return notes, nil
}

// Get fetches one note.
func (c *Client) Get(ctx context.Context, userID, noteID string) (models.Note, error) {
	resp, err := c.do(ctx, http.MethodGet, "/notes/"+noteID, nil)
	if err != nil {
		return models.Note{}, repository.WrapErr("get", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return models.Note{}, repository.ErrNotFound
	default:
		return models.Note{}, repository.WrapErr("get", apiError(resp))
	}

	var d noteDTO
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return models.Note{}, repository.WrapErr("get", err)
	}
	return models.Note(d), nil
}

// Create stores a new note and returns the server-assigned id.
func (c *Client) Create(ctx context.Context, userID, content string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/notes", map[string]string{"content": content})
	if err != nil {
		return "", repository.WrapErr("create", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", repository.WrapErr("create", apiError(resp))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", repository.WrapErr("create", err)
	}
	return out.ID, nil
}

// Update replaces the note's content; the server stamps updated_at.
func (c *Client) Update(ctx context.Context, userID, noteID, content string) error {
	resp, err := c.do(ctx, http.MethodPut, "/notes/"+noteID, map[string]string{"content": content})
	if err != nil {
		return repository.WrapErr("update", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return repository.ErrNotFound
	default:
		return repository.WrapErr("update", apiError(resp))
	}
}

// Delete removes the note. A missing note is treated as deleted.
func (c *Client) Delete(ctx context.Context, userID, noteID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/notes/"+noteID, nil)
	if err != nil {
		return repository.WrapErr("delete", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		return nil
	default:
		return repository.WrapErr("delete", apiError(resp))
	}
}

// DeleteCurrentIdentity deletes the signed-in account. A 401 with the
// server's reauth marker maps to repository.ErrReauthRequired so the
// caller can distinguish "sign in again" from a transient failure.
func (c *Client) DeleteCurrentIdentity(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/auth/account", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	default:
		return apiError(resp)
	}
}

var errInvalidCredentials = errors.New("invalid credentials")

func authRequest(ctx context.Context, baseURL, path, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(baseURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", errInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", apiError(resp)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login exchanges credentials for a session token.
func Login(ctx context.Context, baseURL, email, password string) (string, error) {
	return authRequest(ctx, baseURL, "/auth/login", email, password)
}

// Register creates an account and returns its first session token.
func Register(ctx context.Context, baseURL, email, password string) (string, error) {
	return authRequest(ctx, baseURL, "/auth/register", email, password)
}
