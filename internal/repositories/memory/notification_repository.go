package memory

import (
	"context"
	"sync"
	"time"

	"committee-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationRepository is an in-memory repositories.NotificationRepository
// for mock store mode.
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []*models.Notification
}

// NewNotificationRepository creates an empty in-memory notification repository
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// Create records a notification attempt
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	stored := *notification
	r.notifications = append(r.notifications, &stored)
	return nil
}

// FindByMonth returns all notification attempts for a month, newest first
func (r *NotificationRepository) FindByMonth(ctx context.Context, month string) ([]*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*models.Notification{}
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].Month == month {
			found := *r.notifications[i]
			out = append(out, &found)
		}
	}
	return out, nil
}
