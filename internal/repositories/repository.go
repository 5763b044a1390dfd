package repositories

import (
	"context"
	"errors"

	"committee-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("record not found")

// MemberRepository defines the per-month ledger store. Every operation is
// scoped to one month's collection; no cross-month transactions exist.
type MemberRepository interface {
	Create(ctx context.Context, month string, member *models.Member) error
	CreateMany(ctx context.Context, month string, members []*models.Member) error
	FindByID(ctx context.Context, month string, id primitive.ObjectID) (*models.Member, error)
	// FindAllOrderedByName returns the month's roster ordered by full name,
	// case-insensitive. This ordering is load-bearing: it is the canonical
	// order used for token assignment.
	FindAllOrderedByName(ctx context.Context, month string) ([]*models.Member, error)
	// FindWinner returns the record carrying the winner marker tagged with
	// this same month, or ErrNotFound.
	FindWinner(ctx context.Context, month string) (*models.Member, error)
	FindByNameAndMobile(ctx context.Context, month, fullName, mobileNumber string) (*models.Member, error)
	Update(ctx context.Context, month string, member *models.Member) error
	Delete(ctx context.Context, month string, id primitive.ObjectID) error
	Count(ctx context.Context, month string) (int64, error)
	// ClearTokens unsets every token number in the month's collection as a
	// single batch write.
	ClearTokens(ctx context.Context, month string) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}

// NotificationRepository defines the interface for notification log operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByMonth(ctx context.Context, month string) ([]*models.Notification, error)
}
