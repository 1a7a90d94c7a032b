package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is the single failure channel for login: a
	// missing admin and a wrong password are deliberately indistinguishable
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrSetupAlreadyDone = errors.New("admin account already exists")
	ErrAdminNotFound    = errors.New("admin not found")
	ErrWrongPassword    = errors.New("wrong current password")
	ErrPasswordTooShort = errors.New("new password too short")
	ErrInvalidToken     = errors.New("invalid token")
)

// Admin is the single privileged account able to mutate site content.
// Created once via first-run setup, mutated only by password change.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the claim set carried inside a token, resolved again on
// every authorized request - purely from the token, without a db lookup
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxKey int

const identityCtxKey ctxKey = 0

func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(Identity)
	return identity, ok
}
