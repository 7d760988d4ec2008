package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

const msgPrescriptionNotFound = "Prescription not found"

type PrescriptionService struct {
	prescriptions repository.PrescriptionRepository
	consultations repository.ConsultationRepository
	users         repository.UserRepository
	notifier      Notifier
	log           zerolog.Logger
}

func NewPrescriptionService(store *repository.Store, notifier Notifier, log zerolog.Logger) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: store.Prescriptions,
		consultations: store.Consultations,
		users:         store.Users,
		notifier:      notifier,
		log:           log.With().Str("service", "prescriptions").Logger(),
	}
}

func validateMedications(meds []models.Medication) error {
	if len(meds) == 0 {
		return apperror.Validation("At least one medication is required")
	}
	for i, m := range meds {
		if m.Name == "" || m.Dosage == "" || m.Frequency == "" {
			return apperror.Validation("Medication %d needs a name, dosage and frequency", i+1)
		}
	}
	return nil
}

// Create issues a prescription and texts the patient.
func (s *PrescriptionService) Create(ctx context.Context, caller models.Principal, req models.CreatePrescriptionRequest) (*models.Prescription, error) {
	if err := validateMedications(req.Medications); err != nil {
		return nil, err
	}
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

	consultationID, err := ParseOptionalID(req.ConsultationID, "consultation")
	if err != nil {
		return nil, err
	}
	if consultationID != nil {
		c, err := s.consultations.FindByID(ctx, *consultationID)
		if err != nil {
			return nil, notFound(err, msgConsultationNotFound)
		}
		if c.PatientID != patient.ID {
			return nil, apperror.Validation("Consultation belongs to another patient")
		}
	}

	now := time.Now().UTC()
	p := &models.Prescription{
		ID:             primitive.NewObjectID(),
		PatientID:      patient.ID,
		DoctorID:       doctor.ID,
		ConsultationID: consultationID,
		Medications:    req.Medications,
		Notes:          req.Notes,
		IssuedAt:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("prescription_id", p.ID.Hex()).Str("patient_id", patient.ID.Hex()).Msg("prescription issued")

	s.notifier.Notify(ctx, patient, fmt.Sprintf("Hello %s, Dr. %s issued you a prescription with %d medication(s).",
		patient.FullName, doctor.FullName, len(p.Medications)))
	return p, nil
}

func (s *PrescriptionService) Get(ctx context.Context, caller models.Principal, id primitive.ObjectID) (*models.Prescription, error) {
	p, err := s.prescriptions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgPrescriptionNotFound)
	}
	if !visible(caller, p.PatientID, p.DoctorID) {
		return nil, apperror.NotFound(msgPrescriptionNotFound)
	}
	return p, nil
}

func (s *PrescriptionService) List(ctx context.Context, caller models.Principal, f models.RecordFilter) ([]models.Prescription, error) {
	f.ClinicID = nil
	return s.prescriptions.List(ctx, scopeFilter(caller, f))
}

func (s *PrescriptionService) Update(ctx context.Context, caller models.Principal, id primitive.ObjectID, req models.UpdatePrescriptionRequest) (*models.Prescription, error) {
	p, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if req.Medications != nil {
		if err := validateMedications(req.Medications); err != nil {
			return nil, err
		}
		p.Medications = req.Medications
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.prescriptions.Update(ctx, p); err != nil {
		return nil, notFound(err, msgPrescriptionNotFound)
	}
	return p, nil
}

func (s *PrescriptionService) Delete(ctx context.Context, caller models.Principal, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	if err := s.prescriptions.Delete(ctx, id); err != nil {
		return notFound(err, msgPrescriptionNotFound)
	}
	s.log.Info().Str("prescription_id", id.Hex()).Msg("prescription deleted")
	return nil
}
