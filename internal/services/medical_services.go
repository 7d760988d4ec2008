package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

const msgServiceNotFound = "Medical service not found"

type MedicalServiceService struct {
	services repository.MedicalServiceRepository
	clinics  repository.ClinicRepository
	log      zerolog.Logger
}

func NewMedicalServiceService(store *repository.Store, log zerolog.Logger) *MedicalServiceService {
	return &MedicalServiceService{
		services: store.MedicalServices,
		clinics:  store.Clinics,
		log:      log.With().Str("service", "medical_services").Logger(),
	}
}

func (s *MedicalServiceService) Create(ctx context.Context, req models.CreateMedicalServiceRequest) (*models.MedicalService, error) {
	if req.Price == nil || *req.Price < 0 {
		return nil, apperror.Validation("Price must be a non-negative number")
	}
	if req.DurationMinutes < 0 {
		return nil, apperror.Validation("Duration must be non-negative")
	}
	clinicID, err := ParseID(req.ClinicID, "clinique")
	if err != nil {
		return nil, err
	}
	if _, err := s.clinics.FindByID(ctx, clinicID); err != nil {
		return nil, notFound(err, msgClinicNotFound)
	}

	now := time.Now().UTC()
	ms := &models.MedicalService{
		ID:              primitive.NewObjectID(),
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           *req.Price,
		DurationMinutes: req.DurationMinutes,
		ClinicID:        clinicID,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.services.Create(ctx, ms); err != nil {
		return nil, err
	}
	s.log.Info().Str("service_id", ms.ID.Hex()).Str("clinic_id", clinicID.Hex()).Msg("medical service created")
	return ms, nil
}

func (s *MedicalServiceService) Get(ctx context.Context, id primitive.ObjectID) (*models.MedicalService, error) {
	ms, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgServiceNotFound)
	}
	return ms, nil
}

// List returns active and inactive services alike.
func (s *MedicalServiceService) List(ctx context.Context, clinicID *primitive.ObjectID) ([]models.MedicalService, error) {
	return s.services.List(ctx, clinicID)
}

func (s *MedicalServiceService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateMedicalServiceRequest) (*models.MedicalService, error) {
	ms, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ms.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		ms.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperror.Validation("Price must be a non-negative number")
		}
		ms.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 0 {
			return nil, apperror.Validation("Duration must be non-negative")
		}
		ms.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		ms.IsActive = *req.IsActive
	}
	ms.UpdatedAt = time.Now().UTC()

	if err := s.services.Update(ctx, ms); err != nil {
		return nil, notFound(err, msgServiceNotFound)
	}
	return ms, nil
}

func (s *MedicalServiceService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return notFound(err, msgServiceNotFound)
	}
	s.log.Info().Str("service_id", id.Hex()).Msg("medical service deleted")
	return nil
}
