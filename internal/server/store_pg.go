package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is the pgx-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a connection pool.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) UpsertUser(ctx context.Context, email string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, fmt.Errorf("email is required")
	}

	var u User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email)
		 VALUES ($1)
		 ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		 RETURNING id::text, email, created_at`,
		email,
	).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) SetPassword(ctx context.Context, userID, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	cmd, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1::uuid`,
		userID, hash,
	)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Credentials(ctx context.Context, email string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var userID string
	var hash *string
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, password_hash FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&userID, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("lookup credentials: %w", err)
	}
	if hash == nil || *hash == "" {
		return "", "", ErrNotFound
	}
	return userID, *hash, nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	// Opportunistic cleanup keeps the table from accumulating expired rows.
	_, _ = s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (token_hash, user_id, expires_at) VALUES ($1, $2::uuid, $3)`,
		tokenHash, userID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) UserBySession(ctx context.Context, tokenHash string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT u.id::text, u.email, u.created_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token_hash = $1 AND s.expires_at > now()`,
		tokenHash,
	).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("resolve session: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) RecordAttempt(ctx context.Context, a Attempt) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	answeredAt := a.AnsweredAt
	if answeredAt.IsZero() {
		answeredAt = time.Now()
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO attempts (user_id, source_id, selected, correct, answered_at)
		 VALUES ($1::uuid, $2, $3, $4, $5)
		 RETURNING id`,
		a.UserID, a.SourceID, a.Selected, a.Correct, answeredAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("record attempt: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) AttemptsByUser(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id::text, source_id, selected, correct, answered_at
		 FROM attempts
		 WHERE user_id = $1::uuid
		 ORDER BY answered_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	// Cap the pre-allocation: limit is caller-supplied and only an upper
	// bound on the row count.
	attempts := make([]Attempt, 0, min(limit, 64))
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.SourceID, &a.Selected, &a.Correct, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}
