package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

const usersCollection = "users"

// AdminRepository implements ports.AdminLookup on a users collection keyed by
// the identity-provider user id.
type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID      string `bson:"_id"`
	Login   string `bson:"login"`
	IsAdmin bool   `bson:"is_admin"`
}

func (r *AdminRepository) IsAdmin(ctx context.Context, userID string) (bool, bool, error) {
	var mu mongoUser
	opts := options.FindOne().SetProjection(bson.M{"is_admin": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, false, nil
		}
		return false, false, domain.StoreError("mongo admin lookup", err)
	}
	return mu.IsAdmin, true, nil
}

func (r *AdminRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, nil); err != nil {
		return domain.StoreError("mongo ping", err)
	}
	return nil
}
