package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/metrics"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

const (
	msgClinicNotFound = "Clinique not found"
	msgClinicConflict = "Clinique with this name, email or phone number already exists"
)

// ClinicService is the clinic registry and the staff assignment service.
type ClinicService struct {
	clinics  repository.ClinicRepository
	users    repository.UserRepository
	tx       repository.TxRunner
	notifier Notifier
	log      zerolog.Logger
}

func NewClinicService(store *repository.Store, notifier Notifier, log zerolog.Logger) *ClinicService {
	return &ClinicService{
		clinics:  store.Clinics,
		users:    store.Users,
		tx:       store.Tx,
		notifier: notifier,
		log:      log.With().Str("service", "clinics").Logger(),
	}
}

func (s *ClinicService) CreateClinic(ctx context.Context, req models.CreateClinicRequest, creatorID primitive.ObjectID) (*models.Clinic, error) {
	creator, err := s.users.FindByID(ctx, creatorID)
	if err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	if creator.Role != models.RoleAdmin {
		return nil, apperror.Forbidden("Only an admin can create a clinique")
	}

	c := &models.Clinic{
		ID:      primitive.NewObjectID(),
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Phone:   req.Phone,
		Email:   normalizeEmail(req.Email),
		AddedBy: creator.ID,
	}

	exists, err := s.clinics.ExistsConflicting(ctx, c.Name, c.Email, c.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict(msgClinicConflict)
	}

	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	if err := s.clinics.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgClinicConflict)
		}
		return nil, err
	}

	s.log.Info().Str("clinic_id", c.ID.Hex()).Str("added_by", creator.ID.Hex()).Msg("clinique created")
	return c, nil
}

func (s *ClinicService) GetClinic(ctx context.Context, id primitive.ObjectID) (*models.Clinic, error) {
	c, err := s.clinics.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgClinicNotFound)
	}
	return c, nil
}

func (s *ClinicService) ListAll(ctx context.Context) ([]models.Clinic, error) {
	return s.clinics.List(ctx, nil)
}

// ListCreatedBy returns the clinics owned by adminID with the admin
// record populated.
func (s *ClinicService) ListCreatedBy(ctx context.Context, adminID primitive.ObjectID) ([]models.ClinicWithAdmin, error) {
	admin, err := s.users.FindByID(ctx, adminID)
	if err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	clinics, err := s.clinics.List(ctx, &adminID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ClinicWithAdmin, 0, len(clinics))
	for _, c := range clinics {
		out = append(out, models.ClinicWithAdmin{Clinic: c, AddedBy: admin})
	}
	return out, nil
}

// UpdateClinic merges the provided fields over the stored clinic. The
// name/email/phone uniqueness check of creation is not repeated here; a
// collision rejected by the storage layer still surfaces as a conflict.
func (s *ClinicService) UpdateClinic(ctx context.Context, id primitive.ObjectID, req models.UpdateClinicRequest) (*models.Clinic, error) {
	c, err := s.GetClinic(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = normalizeEmail(*req.Email)
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.clinics.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgClinicConflict)
		}
		return nil, notFound(err, msgClinicNotFound)
	}
	return c, nil
}

// DeleteClinic removes the clinic unconditionally. Staff and records that
// reference it keep their dangling clinic id.
func (s *ClinicService) DeleteClinic(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetClinic(ctx, id); err != nil {
		return err
	}
	if err := s.clinics.Delete(ctx, id); err != nil {
		return notFound(err, msgClinicNotFound)
	}
	s.log.Info().Str("clinic_id", id.Hex()).Msg("clinique deleted")
	return nil
}

// AssignUsers attaches every listed user to the clinic. All users must
// exist and carry role; otherwise nothing is written.
func (s *ClinicService) AssignUsers(ctx context.Context, clinicID primitive.ObjectID, role models.Role, userIDs []primitive.ObjectID) ([]models.User, error) {
	var clinic *models.Clinic
	assigned, err := s.moveUsers(ctx, role, userIDs, func(ctx context.Context) (*primitive.ObjectID, error) {
		c, err := s.GetClinic(ctx, clinicID)
		if err != nil {
			return nil, err
		}
		clinic = c
		return &c.ID, nil
	})
	if err != nil {
		metrics.ObserveAssignment(string(role), "rejected")
		return nil, err
	}
	metrics.ObserveAssignment(string(role), "ok")

	s.log.Info().Str("clinic_id", clinicID.Hex()).Str("role", string(role)).Int("count", len(assigned)).Msg("users assigned")
	for i := range assigned {
		s.notifier.Notify(ctx, &assigned[i], fmt.Sprintf("You have been assigned as %s to %s.", role, clinic.Name))
	}
	return assigned, nil
}

// UnassignUsers detaches the listed users from whatever clinic they
// belong to, with the same validation and atomicity as AssignUsers.
func (s *ClinicService) UnassignUsers(ctx context.Context, role models.Role, userIDs []primitive.ObjectID) ([]models.User, error) {
	detached, err := s.moveUsers(ctx, role, userIDs, func(context.Context) (*primitive.ObjectID, error) {
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("role", string(role)).Int("count", len(detached)).Msg("users unassigned")
	return detached, nil
}

// moveUsers validates the batch and sets the clinic reference of every
// user inside one transaction. target resolves the destination clinic
// within the transaction; nil detaches.
func (s *ClinicService) moveUsers(
	ctx context.Context,
	role models.Role,
	userIDs []primitive.ObjectID,
	target func(ctx context.Context) (*primitive.ObjectID, error),
) ([]models.User, error) {
	if !role.Assignable() {
		return nil, apperror.Validation("Role must be doctor or receptionist, got %q", role)
	}
	ids := dedupe(userIDs)
	if len(ids) == 0 {
		return nil, apperror.Validation("At least one user id is required")
	}

	var moved []models.User
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		moved = moved[:0]
		clinicID, err := target(ctx)
		if err != nil {
			return err
		}

		for _, id := range ids {
			u, err := s.users.FindByID(ctx, id)
			if err != nil {
				return notFound(err, fmt.Sprintf("User %s not found", id.Hex()))
			}
			if u.Role != role {
				return apperror.Validation("User %s is a %s, not a %s", id.Hex(), u.Role, role)
			}
			u.ClinicID = clinicID
			moved = append(moved, *u)
		}

		if err := s.users.SetClinic(ctx, ids, clinicID); err != nil {
			return notFound(err, msgUserNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// ListStaff returns the doctors or receptionists attached to a clinic.
func (s *ClinicService) ListStaff(ctx context.Context, clinicID primitive.ObjectID, role models.Role) ([]models.User, error) {
	if role != "" && !role.Assignable() {
		return nil, apperror.Validation("Role must be doctor or receptionist, got %q", role)
	}
	if _, err := s.GetClinic(ctx, clinicID); err != nil {
		return nil, err
	}
	return s.users.List(ctx, models.UserFilter{Role: role, ClinicID: &clinicID})
}
