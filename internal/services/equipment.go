package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/metrics"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

const msgEquipmentNotFound = "Equipment not found"

type EquipmentService struct {
	equipment repository.EquipmentRepository
	clinics   repository.ClinicRepository
	log       zerolog.Logger
}

func NewEquipmentService(store *repository.Store, log zerolog.Logger) *EquipmentService {
	return &EquipmentService{
		equipment: store.Equipment,
		clinics:   store.Clinics,
		log:       log.With().Str("service", "equipment").Logger(),
	}
}

func validateStock(quantity, minStock int, unitPrice float64) error {
	if quantity < 0 || minStock < 0 {
		return apperror.Validation("Quantity and minStock must be non-negative integers")
	}
	if unitPrice < 0 {
		return apperror.Validation("Unit price must be non-negative")
	}
	return nil
}

func (s *EquipmentService) checkClinic(ctx context.Context, id *primitive.ObjectID) error {
	if id == nil {
		return nil
	}
	if _, err := s.clinics.FindByID(ctx, *id); err != nil {
		return notFound(err, msgClinicNotFound)
	}
	return nil
}

func (s *EquipmentService) Create(ctx context.Context, req models.CreateEquipmentRequest) (*models.Equipment, error) {
	if req.Quantity == nil || req.MinStock == nil || req.UnitPrice == nil {
		return nil, apperror.Validation("Quantity, minStock and unitPrice are required")
	}
	if err := validateStock(*req.Quantity, *req.MinStock, *req.UnitPrice); err != nil {
		return nil, err
	}
	clinicID, err := ParseOptionalID(req.ClinicID, "clinique")
	if err != nil {
		return nil, err
	}
	if err := s.checkClinic(ctx, clinicID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &models.Equipment{
		ID:          primitive.NewObjectID(),
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Description: req.Description,
		Quantity:    *req.Quantity,
		MinStock:    *req.MinStock,
		UnitPrice:   *req.UnitPrice,
		Supplier:    req.Supplier,
		ClinicID:    clinicID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.equipment.Create(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info().Str("equipment_id", e.ID.Hex()).Msg("equipment created")
	return e, nil
}

func (s *EquipmentService) Get(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	e, err := s.equipment.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgEquipmentNotFound)
	}
	return e, nil
}

// List returns active equipment only.
func (s *EquipmentService) List(ctx context.Context, clinicID *primitive.ObjectID) ([]models.Equipment, error) {
	return s.equipment.List(ctx, models.EquipmentFilter{ClinicID: clinicID, ActiveOnly: true})
}

// LowStock returns active equipment whose quantity is at or below minStock.
func (s *EquipmentService) LowStock(ctx context.Context, clinicID *primitive.ObjectID) ([]models.Equipment, error) {
	rows, err := s.equipment.ListLowStock(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinicID == nil {
		metrics.SetLowStock(len(rows))
	}
	return rows, nil
}

// Update re-validates changed fields. Setting isActive back to true
// reactivates a row that was switched off.
func (s *EquipmentService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateEquipmentRequest) (*models.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Quantity != nil {
		e.Quantity = *req.Quantity
	}
	if req.MinStock != nil {
		e.MinStock = *req.MinStock
	}
	if req.UnitPrice != nil {
		e.UnitPrice = *req.UnitPrice
	}
	if req.Supplier != nil {
		e.Supplier = *req.Supplier
	}
	if req.ClinicID != nil {
		clinicID, err := ParseOptionalID(*req.ClinicID, "clinique")
		if err != nil {
			return nil, err
		}
		if err := s.checkClinic(ctx, clinicID); err != nil {
			return nil, err
		}
		e.ClinicID = clinicID
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if err := validateStock(e.Quantity, e.MinStock, e.UnitPrice); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.equipment.Update(ctx, e); err != nil {
		return nil, notFound(err, msgEquipmentNotFound)
	}
	return e, nil
}

// Delete removes the row; there is no soft delete.
func (s *EquipmentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.equipment.Delete(ctx, id); err != nil {
		return notFound(err, msgEquipmentNotFound)
	}
	s.log.Info().Str("equipment_id", id.Hex()).Msg("equipment deleted")
	return nil
}
