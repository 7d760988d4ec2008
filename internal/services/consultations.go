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

const msgConsultationNotFound = "Consultation not found"

type ConsultationService struct {
	consultations repository.ConsultationRepository
	users         repository.UserRepository
	clinics       repository.ClinicRepository
	log           zerolog.Logger
}

func NewConsultationService(store *repository.Store, log zerolog.Logger) *ConsultationService {
	return &ConsultationService{
		consultations: store.Consultations,
		users:         store.Users,
		clinics:       store.Clinics,
		log:           log.With().Str("service", "consultations").Logger(),
	}
}

// Create books a consultation. The clinic defaults to the doctor's clinic.
func (s *ConsultationService) Create(ctx context.Context, caller models.Principal, req models.CreateConsultationRequest) (*models.Consultation, error) {
	patientID, err := ParseID(req.PatientID, "patient")
	if err != nil {
		return nil, err
	}
	patient, err := findWithRole(ctx, s.users, patientID, models.RolePatient, "Patient not found")
	if err != nil {
		return nil, err
	}
	doctor, err := resolveDoctor(ctx, s.users, caller, req.DoctorID)
	if err != nil {
		return nil, err
	}

	clinicID, err := ParseOptionalID(req.ClinicID, "clinique")
	if err != nil {
		return nil, err
	}
	if clinicID == nil {
		clinicID = doctor.ClinicID
	}
	if clinicID != nil {
		if _, err := s.clinics.FindByID(ctx, *clinicID); err != nil {
			return nil, notFound(err, msgClinicNotFound)
		}
	}

	now := time.Now().UTC()
	c := &models.Consultation{
		ID:        primitive.NewObjectID(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		ClinicID:  clinicID,
		Date:      req.Date.UTC(),
		Reason:    strings.TrimSpace(req.Reason),
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
		Status:    models.ConsultationScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.consultations.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("consultation_id", c.ID.Hex()).Str("doctor_id", doctor.ID.Hex()).Msg("consultation created")
	return c, nil
}

// Get hides records outside the caller's scope behind a 404.
func (s *ConsultationService) Get(ctx context.Context, caller models.Principal, id primitive.ObjectID) (*models.Consultation, error) {
	c, err := s.consultations.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgConsultationNotFound)
	}
	if !visible(caller, c.PatientID, c.DoctorID) {
		return nil, apperror.NotFound(msgConsultationNotFound)
	}
	return c, nil
}

func (s *ConsultationService) List(ctx context.Context, caller models.Principal, f models.RecordFilter) ([]models.Consultation, error) {
	return s.consultations.List(ctx, scopeFilter(caller, f))
}

func (s *ConsultationService) Update(ctx context.Context, caller models.Principal, id primitive.ObjectID, req models.UpdateConsultationRequest) (*models.Consultation, error) {
	c, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		c.Date = req.Date.UTC()
	}
	if req.Reason != nil {
		c.Reason = strings.TrimSpace(*req.Reason)
	}
	if req.Diagnosis != nil {
		c.Diagnosis = *req.Diagnosis
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ConsultationScheduled, models.ConsultationCompleted, models.ConsultationCancelled:
			c.Status = *req.Status
		default:
			return nil, apperror.Validation("Invalid status %q", *req.Status)
		}
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.consultations.Update(ctx, c); err != nil {
		return nil, notFound(err, msgConsultationNotFound)
	}
	return c, nil
}

func (s *ConsultationService) Delete(ctx context.Context, caller models.Principal, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	if err := s.consultations.Delete(ctx, id); err != nil {
		return notFound(err, msgConsultationNotFound)
	}
	s.log.Info().Str("consultation_id", id.Hex()).Msg("consultation deleted")
	return nil
}
