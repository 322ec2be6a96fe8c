package models

import (
	"strings"
	"time"

	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

// Role controls what an editor can do in the admin API.
type Role string

const (
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// Editor is an authenticated operator of the admin API. PasswordHash is a
// bcrypt hash and never leaves the store layer in responses.
type Editor struct {
	ID           id.EditorID `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type CreateEditorRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (r *CreateEditorRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = string(RoleEditor)
	}
}

func (r *CreateEditorRequest) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	if len(r.Password) < 12 {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 12 characters")
	}
	if !Role(r.Role).Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown role")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "email and password are required")
	}
	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
