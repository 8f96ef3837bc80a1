package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
)

type AdminRepository struct {
	mu     sync.RWMutex
	admins map[string]auth.Admin
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{admins: make(map[string]auth.Admin)}
}

// GetByUsername implements auth.AdminRepository.
func (r *AdminRepository) GetByUsername(_ context.Context, username string) (auth.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, admin := range r.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return auth.Admin{}, auth.ErrAdminNotFound
}

// Create implements auth.AdminRepository.
func (r *AdminRepository) Create(_ context.Context, admin auth.Admin) (auth.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if existing.Username == admin.Username {
			return auth.Admin{}, auth.ErrUsernameExists
		}
	}

	now := time.Now().UTC()
	admin.ID = uuid.NewString()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	r.admins[admin.ID] = admin
	return admin, nil
}

// UpdatePassword implements auth.AdminRepository.
func (r *AdminRepository) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return auth.ErrAdminNotFound
	}
	admin.PasswordHash = passwordHash
	admin.UpdatedAt = time.Now().UTC()
	r.admins[id] = admin
	return nil
}
