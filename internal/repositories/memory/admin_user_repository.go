package memory

import (
	"context"
	"sync"
	"time"

	"committee-backend/internal/models"
	"committee-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUserRepository is an in-memory repositories.AdminUserRepository for
// mock store mode.
type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.AdminUser
}

// NewAdminUserRepository creates an empty in-memory admin user repository
func NewAdminUserRepository() *AdminUserRepository {
	return &AdminUserRepository{users: make(map[primitive.ObjectID]*models.AdminUser)}
}

// Create creates a new admin user
func (r *AdminUserRepository) Create(ctx context.Context, adminUser *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	adminUser.ID = primitive.NewObjectID()
	adminUser.CreatedAt = time.Now()
	adminUser.UpdatedAt = time.Now()
	stored := *adminUser
	r.users[adminUser.ID] = &stored
	return nil
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindByID finds an admin user by ID
func (r *AdminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := *u
	return &found, nil
}
