package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"committee-backend/internal/models"
	"committee-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberRepository is an in-memory repositories.MemberRepository. It backs
// the mock store mode and the service test suites, and mirrors the MongoDB
// implementation's semantics: per-month isolation, case-insensitive name
// ordering, ErrNotFound on missing ids.
type MemberRepository struct {
	mu     sync.RWMutex
	months map[string]map[primitive.ObjectID]*models.Member
}

// NewMemberRepository creates an empty in-memory member repository
func NewMemberRepository() *MemberRepository {
	return &MemberRepository{
		months: make(map[string]map[primitive.ObjectID]*models.Member),
	}
}

func (r *MemberRepository) month(month string) map[primitive.ObjectID]*models.Member {
	m, ok := r.months[month]
	if !ok {
		m = make(map[primitive.ObjectID]*models.Member)
		r.months[month] = m
	}
	return m
}

func clone(m *models.Member) *models.Member {
	out := *m
	if m.TokenNumber != nil {
		token := *m.TokenNumber
		out.TokenNumber = &token
	}
	return &out
}

// Create inserts a new member into the month's collection
func (r *MemberRepository) Create(ctx context.Context, month string, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member.ID = primitive.NewObjectID()
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()
	r.month(month)[member.ID] = clone(member)
	return nil
}

// CreateMany bulk-inserts members into the month's collection
func (r *MemberRepository) CreateMany(ctx context.Context, month string, members []*models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	coll := r.month(month)
	for _, member := range members {
		member.ID = primitive.NewObjectID()
		member.CreatedAt = now
		member.UpdatedAt = now
		coll[member.ID] = clone(member)
	}
	return nil
}

// FindByID finds a member by ID in the month's collection
func (r *MemberRepository) FindByID(ctx context.Context, month string, id primitive.ObjectID) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.months[month][id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return clone(member), nil
}

// FindAllOrderedByName returns the month's roster in canonical name order
func (r *MemberRepository) FindAllOrderedByName(ctx context.Context, month string) ([]*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*models.Member, 0, len(r.months[month]))
	for _, m := range r.months[month] {
		members = append(members, clone(m))
	}
	sort.SliceStable(members, func(i, j int) bool {
		return strings.ToLower(members[i].FullName) < strings.ToLower(members[j].FullName)
	})
	return members, nil
}

// FindWinner finds the record carrying the winner marker tagged with month
func (r *MemberRepository) FindWinner(ctx context.Context, month string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.months[month] {
		if m.DrawStatus.IsWinnerOf(month) {
			return clone(m), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindByNameAndMobile finds a member by exact full name and mobile number
func (r *MemberRepository) FindByNameAndMobile(ctx context.Context, month, fullName, mobileNumber string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.months[month] {
		if m.FullName == fullName && m.MobileNumber == mobileNumber {
			return clone(m), nil
		}
	}
	return nil, repositories.ErrNotFound
}

// Update replaces a member record and refreshes its updatedAt
func (r *MemberRepository) Update(ctx context.Context, month string, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	coll, ok := r.months[month]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := coll[member.ID]; !ok {
		return repositories.ErrNotFound
	}
	member.UpdatedAt = time.Now()
	coll[member.ID] = clone(member)
	return nil
}

// Delete removes a member from the month's collection
func (r *MemberRepository) Delete(ctx context.Context, month string, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	coll, ok := r.months[month]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := coll[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(coll, id)
	return nil
}

// Count returns the number of members in the month's collection
func (r *MemberRepository) Count(ctx context.Context, month string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.months[month])), nil
}

// ClearTokens unsets every token number in the month's collection
func (r *MemberRepository) ClearTokens(ctx context.Context, month string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.months[month] {
		m.TokenNumber = nil
	}
	return nil
}
