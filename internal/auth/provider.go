// Package auth verifies bearer tokens and announces sign-in and sign-out to
// the rest of the server.
package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailExists        = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Claims are the verified facts about a token's holder.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// Provider verifies bearer tokens.
type Provider interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}
