package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/teamsync/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	byEmail := make(map[string]user.User, len(users))
	for _, item := range users {
		byEmail[user.NormalizeEmail(item.Email)] = item
	}
	return &UserRepository{byEmail: byEmail}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byEmail[user.NormalizeEmail(email)]
	return item, ok, nil
}
