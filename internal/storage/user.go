package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/s/courseEnrollment/internal/models"
)

// UserStore owns the user table. It is append-only.
type UserStore struct {
	mu      sync.Mutex
	backend LineBackend
}

func NewUserStore(backend LineBackend) *UserStore {
	return &UserStore{backend: backend}
}

// List returns users keyed by username. Lines without all three fields are skipped;
// a later line for the same username wins.
func (s *UserStore) List(ctx context.Context) (map[string]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.backend.ReadLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make(map[string]models.User, len(lines))
	for _, line := range lines {
		if u, ok := DecodeUserLine(line); ok {
			users[u.Username] = u
		}
	}
	return users, nil
}

// Get finds a user by username.
func (s *UserStore) Get(ctx context.Context, username string) (models.User, bool, error) {
	users, err := s.List(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	u, ok := users[username]
	return u, ok, nil
}

// Add appends the user. The caller checks that the username is free.
func (s *UserStore) Add(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.AppendLine(ctx, EncodeUser(u)); err != nil {
		return fmt.Errorf("failed to save user %s: %w", u.Username, err)
	}
	return nil
}
