package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/models"
)

type mongoUsers struct {
	c collection[models.User]
}

func (r *mongoUsers) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, u)
}

func (r *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.c.findByID(ctx, id)
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.c.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUsers) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.ClinicID != nil {
		filter["clinicId"] = *f.ClinicID
	}
	return r.c.find(ctx, filter, newestFirst())
}

func (r *mongoUsers) Update(ctx context.Context, u *models.User) error {
	return r.c.replace(ctx, u.ID, u)
}

func (r *mongoUsers) SetClinic(ctx context.Context, ids []primitive.ObjectID, clinicID *primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	update := bson.M{"$set": bson.M{"updatedAt": time.Now().UTC()}}
	if clinicID != nil {
		update["$set"].(bson.M)["clinicId"] = *clinicID
	} else {
		update["$unset"] = bson.M{"clinicId": ""}
	}

	res, err := r.c.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount != int64(len(ids)) {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.delete(ctx, id)
}
