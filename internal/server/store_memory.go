package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store, CodeStore, and StateStore used by
// tests and local development without postgres/redis.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[string]User   // by id
	byEmail   map[string]string // email -> id
	passwords map[string]string // user id -> bcrypt hash
	sessions  map[string]memorySession
	attempts  []Attempt
	codes     map[string]memoryCode
	states    map[string][]byte
	nextID    int
}

type memorySession struct {
	userID    string
	expiresAt time.Time
}

type memoryCode struct {
	code      string
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]User),
		byEmail:   make(map[string]string),
		passwords: make(map[string]string),
		sessions:  make(map[string]memorySession),
		codes:     make(map[string]memoryCode),
		states:    make(map[string][]byte),
	}
}

func (m *MemoryStore) UpsertUser(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if id, ok := m.byEmail[email]; ok {
		return m.users[id], nil
	}

	m.nextID++
	u := User{ID: fmt.Sprintf("u%d", m.nextID), Email: email, CreatedAt: time.Now()}
	m.users[u.ID] = u
	m.byEmail[email] = u.ID
	return u, nil
}

func (m *MemoryStore) SetPassword(_ context.Context, userID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return ErrNotFound
	}
	m.passwords[userID] = hash
	return nil
}

func (m *MemoryStore) Credentials(_ context.Context, email string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return "", "", ErrNotFound
	}
	hash, ok := m.passwords[id]
	if !ok {
		return "", "", ErrNotFound
	}
	return id, hash, nil
}

func (m *MemoryStore) CreateSession(_ context.Context, tokenHash, userID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[tokenHash] = memorySession{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

func (m *MemoryStore) UserBySession(_ context.Context, tokenHash string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[tokenHash]
	if !ok || time.Now().After(s.expiresAt) {
		return User{}, ErrNotFound
	}
	u, ok := m.users[s.userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) RecordAttempt(_ context.Context, a Attempt) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = int64(len(m.attempts) + 1)
	if a.AnsweredAt.IsZero() {
		a.AnsweredAt = time.Now()
	}
	m.attempts = append(m.attempts, a)
	return a.ID, nil
}

func (m *MemoryStore) AttemptsByUser(_ context.Context, userID string, limit int) ([]Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Attempt, 0, min(max(limit, 0), 64))
	for i := len(m.attempts) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if m.attempts[i].UserID == userID {
			out = append(out, m.attempts[i])
		}
	}
	return out, nil
}

func (m *MemoryStore) PutCode(_ context.Context, email, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = memoryCode{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) TakeCode(_ context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[email]
	delete(m.codes, email)
	if !ok || time.Now().After(c.expiresAt) {
		return "", ErrNotFound
	}
	return c.code, nil
}

func (m *MemoryStore) PutState(_ context.Context, userID string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = append([]byte(nil), blob...)
	return nil
}

func (m *MemoryStore) GetState(_ context.Context, userID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.states[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return blob, nil
}
