package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDraftNotFound is returned when no live draft has the id for the owner.
	ErrDraftNotFound = errors.New("contract draft not found")
	// ErrDraftConflict is returned when a draft changed since it was read.
	ErrDraftConflict = errors.New("contract draft was modified concurrently")
)

// ContractDraftRepository stores contract wizard drafts.
type ContractDraftRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewContractDraftRepository creates a drafts repository.
func NewContractDraftRepository(db *MongoDB) *ContractDraftRepository {
	return &ContractDraftRepository{collection: db.Drafts, now: time.Now}
}

// ownedLive matches a draft of owner that has not expired yet.
func (r *ContractDraftRepository) ownedLive(id, owner string) bson.M {
	return bson.M{
		"_id":        id,
		"owner":      owner,
		"expires_at": bson.M{"$gt": r.now()},
	}
}

// Create inserts a new draft at version 1.
func (r *ContractDraftRepository) Create(ctx context.Context, draft *model.ContractDraft) error {
	now := r.now()
	draft.Version = 1
	draft.CreatedAt = now
	draft.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, draft)
	return err
}

// Get returns a live draft of owner.
func (r *ContractDraftRepository) Get(ctx context.Context, id, owner string) (*model.ContractDraft, error) {
	var draft model.ContractDraft
	err := r.collection.FindOne(ctx, r.ownedLive(id, owner)).Decode(&draft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// Update replaces the step, state and expiry of a draft when its stored
// version still matches draft.Version, then bumps the version.
func (r *ContractDraftRepository) Update(ctx context.Context, draft *model.ContractDraft) error {
	filter := r.ownedLive(draft.ID, draft.Owner)
	filter["version"] = draft.Version

	now := r.now()
	update := bson.M{
		"$set": bson.M{
			"step":       draft.Step,
			"state":      draft.State,
			"updated_at": now,
			"expires_at": draft.ExpiresAt,
		},
		"$inc": bson.M{"version": 1},
	}

	var updated model.ContractDraft
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := r.Get(ctx, draft.ID, draft.Owner); getErr == nil {
			return ErrDraftConflict
		}
		return ErrDraftNotFound
	}
	if err != nil {
		return err
	}
	*draft = updated
	return nil
}

// Delete removes a draft of owner.
func (r *ContractDraftRepository) Delete(ctx context.Context, id, owner string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// ListByOwner returns the live drafts of owner, most recently edited first.
func (r *ContractDraftRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*model.ContractDraft, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	filter := bson.M{"owner": owner, "expires_at": bson.M{"$gt": r.now()}}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	drafts := []*model.ContractDraft{}
	if err := cursor.All(ctx, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}
