package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinique-api/internal/models"
)

const (
	usersCollection           = "users"
	clinicsCollection         = "cliniques"
	equipmentCollection       = "equipment"
	medicalServicesCollection = "medical_services"
	consultationsCollection   = "consultations"
	prescriptionsCollection   = "prescriptions"
)

// NewMongoStore wires every repository to collections of db.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:           &mongoUsers{c: newCollection[models.User](db, usersCollection)},
		Clinics:         &mongoClinics{c: newCollection[models.Clinic](db, clinicsCollection)},
		Equipment:       &mongoEquipment{c: newCollection[models.Equipment](db, equipmentCollection)},
		MedicalServices: &mongoMedicalServices{c: newCollection[models.MedicalService](db, medicalServicesCollection)},
		Consultations:   &mongoConsultations{c: newCollection[models.Consultation](db, consultationsCollection)},
		Prescriptions:   &mongoPrescriptions{c: newCollection[models.Prescription](db, prescriptionsCollection)},
		Tx:              &mongoTx{client: db.Client()},
	}
}

// EnsureIndexes creates the unique and lookup indexes. The unique indexes
// are the real guarantee behind email and clinic uniqueness; service-level
// checks only produce friendlier messages.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(field + "_unique"),
		}
	}
	lookup := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}

	plan := map[string][]mongo.IndexModel{
		usersCollection:           {unique("email"), lookup("role"), lookup("clinicId")},
		clinicsCollection:         {unique("name"), unique("email"), unique("phone"), lookup("addedBy")},
		equipmentCollection:       {lookup("clinicId"), lookup("isActive")},
		medicalServicesCollection: {lookup("clinicId")},
		consultationsCollection:   {lookup("patientId"), lookup("doctorId")},
		prescriptionsCollection:   {lookup("patientId"), lookup("doctorId")},
	}
	for coll, idx := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// Ping checks that the server answers.
func Ping(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, nil)
}

type mongoTx struct {
	client *mongo.Client
}

func (t *mongoTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// collection is a typed wrapper over a mongo collection keyed by _id.
type collection[T any] struct {
	coll *mongo.Collection
}

func newCollection[T any](db *mongo.Database, name string) collection[T] {
	return collection[T]{coll: db.Collection(name)}
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter any) (*T, error) {
	var out T
	if err := c.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (c collection[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c collection[T]) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c collection[T]) replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c collection[T]) delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
