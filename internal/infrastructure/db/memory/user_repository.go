// Package memory provides mutex-guarded in-process repositories. They back
// the default storage mode and the test suites; the mongo package provides
// the durable equivalents.
package memory

import (
	"context"
	"sync"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// Create stores a new user. Registration is a check-then-insert sequence, so
// the whole operation holds the lock to keep usernames unique under
// concurrent requests.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = *user
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
