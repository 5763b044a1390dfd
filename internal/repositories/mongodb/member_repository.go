package mongodb

import (
	"context"
	"errors"
	"time"

	"committee-backend/internal/models"
	"committee-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const memberCollectionPrefix = "members_"

// MemberRepository implements repositories.MemberRepository on MongoDB, with
// one independent collection per month.
type MemberRepository struct {
	db *mongo.Database
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *mongo.Database) repositories.MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) collection(month string) *mongo.Collection {
	return r.db.Collection(memberCollectionPrefix + month)
}

// nameCollation makes the fullName sort case-insensitive.
var nameCollation = &options.Collation{Locale: "en", Strength: 2}

// Create inserts a new member into the month's collection
func (r *MemberRepository) Create(ctx context.Context, month string, member *models.Member) error {
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()
	res, err := r.collection(month).InsertOne(ctx, member)
	if err != nil {
		return err
	}
	member.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// CreateMany bulk-inserts members into the month's collection
func (r *MemberRepository) CreateMany(ctx context.Context, month string, members []*models.Member) error {
	if len(members) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(members))
	for _, m := range members {
		m.CreatedAt = now
		m.UpdatedAt = now
		docs = append(docs, m)
	}
	res, err := r.collection(month).InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		if i < len(members) {
			members[i].ID = id.(primitive.ObjectID)
		}
	}
	return nil
}

// FindByID finds a member by ID in the month's collection
func (r *MemberRepository) FindByID(ctx context.Context, month string, id primitive.ObjectID) (*models.Member, error) {
	var member models.Member
	err := r.collection(month).FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindAllOrderedByName returns the month's roster in canonical name order
func (r *MemberRepository) FindAllOrderedByName(ctx context.Context, month string) ([]*models.Member, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "fullName", Value: 1}}).
		SetCollation(nameCollation)
	cursor, err := r.collection(month).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []*models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = []*models.Member{}
	}
	return members, nil
}

// FindWinner finds the record carrying the winner marker tagged with month
func (r *MemberRepository) FindWinner(ctx context.Context, month string) (*models.Member, error) {
	filter := bson.M{
		"drawStatus.state":    models.DrawStateWinner,
		"drawStatus.wonMonth": month,
	}
	var member models.Member
	err := r.collection(month).FindOne(ctx, filter).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindByNameAndMobile finds a member by exact full name and mobile number
func (r *MemberRepository) FindByNameAndMobile(ctx context.Context, month, fullName, mobileNumber string) (*models.Member, error) {
	filter := bson.M{"fullName": fullName, "mobileNumber": mobileNumber}
	var member models.Member
	err := r.collection(month).FindOne(ctx, filter).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Update replaces a member document and refreshes its updatedAt
func (r *MemberRepository) Update(ctx context.Context, month string, member *models.Member) error {
	member.UpdatedAt = time.Now()
	res, err := r.collection(month).ReplaceOne(ctx, bson.M{"_id": member.ID}, member)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete removes a member from the month's collection
func (r *MemberRepository) Delete(ctx context.Context, month string, id primitive.ObjectID) error {
	res, err := r.collection(month).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count returns the number of members in the month's collection
func (r *MemberRepository) Count(ctx context.Context, month string) (int64, error) {
	return r.collection(month).CountDocuments(ctx, bson.M{})
}

// ClearTokens unsets every token number in the month's collection in one
// batch write, so a crash during reassignment can only leave missing tokens,
// never stale duplicates.
func (r *MemberRepository) ClearTokens(ctx context.Context, month string) error {
	_, err := r.collection(month).UpdateMany(ctx, bson.M{}, bson.M{"$unset": bson.M{"tokenNumber": ""}})
	return err
}
