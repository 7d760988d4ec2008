package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/models"
)

// --- Equipment ---

type mongoEquipment struct {
	c collection[models.Equipment]
}

func (r *mongoEquipment) Create(ctx context.Context, e *models.Equipment) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, e)
}

func (r *mongoEquipment) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	return r.c.findByID(ctx, id)
}

func (r *mongoEquipment) List(ctx context.Context, f models.EquipmentFilter) ([]models.Equipment, error) {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	if f.ClinicID != nil {
		filter["clinicId"] = *f.ClinicID
	}
	return r.c.find(ctx, filter, newestFirst())
}

func (r *mongoEquipment) ListLowStock(ctx context.Context, clinicID *primitive.ObjectID) ([]models.Equipment, error) {
	filter := bson.M{
		"isActive": true,
		"$expr":    bson.M{"$lte": bson.A{"$quantity", "$minStock"}},
	}
	if clinicID != nil {
		filter["clinicId"] = *clinicID
	}
	return r.c.find(ctx, filter, newestFirst())
}

func (r *mongoEquipment) Update(ctx context.Context, e *models.Equipment) error {
	return r.c.replace(ctx, e.ID, e)
}

func (r *mongoEquipment) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.delete(ctx, id)
}

// --- Medical services ---

type mongoMedicalServices struct {
	c collection[models.MedicalService]
}

func (r *mongoMedicalServices) Create(ctx context.Context, s *models.MedicalService) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, s)
}

func (r *mongoMedicalServices) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MedicalService, error) {
	return r.c.findByID(ctx, id)
}

func (r *mongoMedicalServices) List(ctx context.Context, clinicID *primitive.ObjectID) ([]models.MedicalService, error) {
	filter := bson.M{}
	if clinicID != nil {
		filter["clinicId"] = *clinicID
	}
	return r.c.find(ctx, filter, newestFirst())
}

func (r *mongoMedicalServices) Update(ctx context.Context, s *models.MedicalService) error {
	return r.c.replace(ctx, s.ID, s)
}

func (r *mongoMedicalServices) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.delete(ctx, id)
}

// --- Consultations ---

type mongoConsultations struct {
	c collection[models.Consultation]
}

func (r *mongoConsultations) Create(ctx context.Context, c *models.Consultation) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, c)
}

func (r *mongoConsultations) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Consultation, error) {
	return r.c.findByID(ctx, id)
}

func (r *mongoConsultations) List(ctx context.Context, f models.RecordFilter) ([]models.Consultation, error) {
	filter := recordFilter(f)
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return r.c.find(ctx, filter, newestFirst())
}

func (r *mongoConsultations) Update(ctx context.Context, c *models.Consultation) error {
	return r.c.replace(ctx, c.ID, c)
}

func (r *mongoConsultations) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.delete(ctx, id)
}

// --- Prescriptions ---

type mongoPrescriptions struct {
	c collection[models.Prescription]
}

func (r *mongoPrescriptions) Create(ctx context.Context, p *models.Prescription) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	return r.c.insert(ctx, p)
}

func (r *mongoPrescriptions) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	return r.c.findByID(ctx, id)
}

func (r *mongoPrescriptions) List(ctx context.Context, f models.RecordFilter) ([]models.Prescription, error) {
	return r.c.find(ctx, recordFilter(f), newestFirst())
}

func (r *mongoPrescriptions) Update(ctx context.Context, p *models.Prescription) error {
	return r.c.replace(ctx, p.ID, p)
}

func (r *mongoPrescriptions) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.delete(ctx, id)
}

func recordFilter(f models.RecordFilter) bson.M {
	filter := bson.M{}
	if f.PatientID != nil {
		filter["patientId"] = *f.PatientID
	}
	if f.DoctorID != nil {
		filter["doctorId"] = *f.DoctorID
	}
	if f.ClinicID != nil {
		filter["clinicId"] = *f.ClinicID
	}
	return filter
}
