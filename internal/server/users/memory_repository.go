package users

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/server/fixtures"
	"golang.org/x/crypto/bcrypt"
)

// MemoryRepository keeps accounts in memory. Emails are matched
// case-insensitively.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository builds the store from fixture users, hashing their
// passwords with the given bcrypt cost.
func NewMemoryRepository(list []fixtures.User, cost int) (*MemoryRepository, error) {
	r := &MemoryRepository{
		byID:    make(map[string]*User, len(list)),
		byEmail: make(map[string]string, len(list)),
	}

	for _, f := range list {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", f.ID, err)
		}
		r.byID[f.ID] = &User{
			ID:           f.ID,
			Email:        f.Email,
			Name:         f.Name,
			PasswordHash: hash,
			Roles:        append([]string(nil), f.Roles...),
			MFAEnabled:   f.MFAEnabled,
			Locked:       f.Locked,
			ServerError:  f.ServerError,
		}
		r.byEmail[strings.ToLower(f.Email)] = f.ID
	}

	return r, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.copyOf(id), nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[id]; !ok {
		return nil, common.ErrorNotFound
	}
	return r.copyOf(id), nil
}

func (r *MemoryRepository) UpdatePasswordHash(ctx context.Context, id string, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = append([]byte(nil), hash...)
	return nil
}

func (r *MemoryRepository) copyOf(id string) *User {
	u := *r.byID[id]
	u.Roles = append([]string(nil), u.Roles...)
	return &u
}
