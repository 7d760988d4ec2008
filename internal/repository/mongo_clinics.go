package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinique-api/internal/models"
)

type mongoClinics struct {
	c collection[models.Clinic]
}

func (r *mongoClinics) Create(ctx context.Context, c *models.Clinic) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, c)
}

func (r *mongoClinics) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Clinic, error) {
	return r.c.findByID(ctx, id)
}

func (r *mongoClinics) ExistsConflicting(ctx context.Context, name, email, phone string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"name": name},
		bson.M{"email": email},
		bson.M{"phone": phone},
	}}
	n, err := r.c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *mongoClinics) List(ctx context.Context, addedBy *primitive.ObjectID) ([]models.Clinic, error) {
	filter := bson.M{}
	if addedBy != nil {
		filter["addedBy"] = *addedBy
	}
	return r.c.find(ctx, filter, newestFirst())
}

func (r *mongoClinics) Update(ctx context.Context, c *models.Clinic) error {
	return r.c.replace(ctx, c.ID, c)
}

func (r *mongoClinics) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.delete(ctx, id)
}
