package server

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("store: not found")

// User is an account identified by email. PasswordHash is empty for
// accounts that only ever log in via verification codes.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attempt records one answered question. SourceID refers to the question's
// dataset identifier, never its process-local numeric id, which is not
// stable across ingestions.
type Attempt struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	SourceID   string    `json:"sourceId"`
	Selected   string    `json:"selected"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// Store is the relational persistence boundary for users, sessions, and
// attempts.
type Store interface {
	// UpsertUser finds or creates the account for an email.
	UpsertUser(ctx context.Context, email string) (User, error)

	// SetPassword stores a bcrypt hash for an existing account.
	SetPassword(ctx context.Context, userID, hash string) error
	// Credentials returns the account id and password hash for an email.
	// ErrNotFound covers both a missing account and one with no password.
	Credentials(ctx context.Context, email string) (userID, hash string, err error)

	CreateSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, tokenHash string) error
	// UserBySession resolves an unexpired session to its account.
	UserBySession(ctx context.Context, tokenHash string) (User, error)

	RecordAttempt(ctx context.Context, a Attempt) (int64, error)
	AttemptsByUser(ctx context.Context, userID string, limit int) ([]Attempt, error)
}

// CodeStore holds short-lived verification codes.
type CodeStore interface {
	PutCode(ctx context.Context, email, code string, ttl time.Duration) error
	TakeCode(ctx context.Context, email string) (string, error)
}

// StateStore persists opaque practice-state snapshots per user.
type StateStore interface {
	PutState(ctx context.Context, userID string, blob []byte) error
	GetState(ctx context.Context, userID string) ([]byte, error)
}
