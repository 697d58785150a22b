package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"redseam/internal/logging"
	"redseam/internal/types"
)

// LoginParams are the credentials for POST /login. Email also accepts a
// username; the server checks both.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/login", nil,
		LoginParams{Email: email, Password: password}, &out, "Login failed. Please try again.")
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	logging.Get(logging.CategoryAuth).Info("logged in as %s", out.User.Username)
	return &out, nil
}

// RegisterParams are the fields for POST /register. AvatarPath is optional;
// when set the file is sent as a multipart part named "avatar".
type RegisterParams struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	AvatarPath           string
}

// Register creates an account. The request is multipart form data because of
// the optional avatar image.
func (c *Client) Register(ctx context.Context, p RegisterParams) (*types.AuthResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username":              p.Username,
		"email":                 p.Email,
		"password":              p.Password,
		"password_confirmation": p.PasswordConfirmation,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if p.AvatarPath != "" {
		if err := attachFile(w, "avatar", p.AvatarPath); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", &buf)
	if err != nil {
		return nil, err
	}
	c.prepare(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := decodeError(resp, "Registration failed. Please try again.")
		// A 401 on register carries no credential meaning; flatten it.
		if errors.Is(err, ErrUnauthenticated) {
			return nil, &APIError{Status: resp.StatusCode, Message: "Registration failed"}
		}
		return nil, err
	}

	var out types.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	logging.Get(logging.CategoryAuth).Info("registered account %s", out.User.Username)
	return &out, nil
}

func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", field, err)
	}
	return nil
}
