// Package repository persists clinic records. Implementations return
// ErrNotFound and ErrDuplicate so callers never depend on driver errors.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/models"
)

var (
	ErrNotFound  = errors.New("repository: not found")
	ErrDuplicate = errors.New("repository: duplicate key")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	// SetClinic points every listed user at clinicID; nil detaches them.
	SetClinic(ctx context.Context, ids []primitive.ObjectID, clinicID *primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ClinicRepository interface {
	Create(ctx context.Context, c *models.Clinic) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Clinic, error)
	// ExistsConflicting reports whether any clinic already uses the name,
	// the email or the phone.
	ExistsConflicting(ctx context.Context, name, email, phone string) (bool, error)
	// List returns all clinics, or only those added by addedBy when set.
	List(ctx context.Context, addedBy *primitive.ObjectID) ([]models.Clinic, error)
	Update(ctx context.Context, c *models.Clinic) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *models.Equipment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error)
	List(ctx context.Context, f models.EquipmentFilter) ([]models.Equipment, error)
	// ListLowStock returns active rows where quantity <= minStock.
	ListLowStock(ctx context.Context, clinicID *primitive.ObjectID) ([]models.Equipment, error)
	Update(ctx context.Context, e *models.Equipment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MedicalServiceRepository interface {
	Create(ctx context.Context, s *models.MedicalService) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MedicalService, error)
	List(ctx context.Context, clinicID *primitive.ObjectID) ([]models.MedicalService, error)
	Update(ctx context.Context, s *models.MedicalService) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ConsultationRepository interface {
	Create(ctx context.Context, c *models.Consultation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Consultation, error)
	List(ctx context.Context, f models.RecordFilter) ([]models.Consultation, error)
	Update(ctx context.Context, c *models.Consultation) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *models.Prescription) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error)
	List(ctx context.Context, f models.RecordFilter) ([]models.Prescription, error)
	Update(ctx context.Context, p *models.Prescription) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TxRunner runs fn atomically. fn must use the context it is given so
// that repository calls join the transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles every repository of one backend.
type Store struct {
	Users           UserRepository
	Clinics         ClinicRepository
	Equipment       EquipmentRepository
	MedicalServices MedicalServiceRepository
	Consultations   ConsultationRepository
	Prescriptions   PrescriptionRepository
	Tx              TxRunner
}
