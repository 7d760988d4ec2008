package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
	"github.com/harentsoaR/clinique-api/internal/utils"
)

const msgUserNotFound = "User not found"

// UserService is the identity store.
type UserService struct {
	users   repository.UserRepository
	clinics repository.ClinicRepository
	hasher  utils.Hasher
	log     zerolog.Logger
}

func NewUserService(store *repository.Store, hasher utils.Hasher, log zerolog.Logger) *UserService {
	return &UserService{
		users:   store.Users,
		clinics: store.Clinics,
		hasher:  hasher,
		log:     log.With().Str("service", "users").Logger(),
	}
}

// CreateUser validates role-specific attributes, hashes the password and
// persists a user with the given role.
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, apperror.Validation("Invalid role %q", role)
	}

	u := &models.User{
		ID:       primitive.NewObjectID(),
		FullName: strings.TrimSpace(req.FullName),
		Email:    normalizeEmail(req.Email),
		Role:     role,
		Phone:    req.Phone,
	}

	clinicID, err := ParseOptionalID(req.ClinicID, "clinique")
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleSuperAdmin, models.RoleAdmin:
		if clinicID != nil || req.Specialization != "" || req.DateOfBirth != nil {
			return nil, apperror.Validation("An %s account cannot carry clinique, specialization or date of birth", role)
		}
	case models.RoleDoctor, models.RoleReceptionist:
		if req.DateOfBirth != nil {
			return nil, apperror.Validation("Date of birth only applies to patients")
		}
		if role == models.RoleReceptionist && req.Specialization != "" {
			return nil, apperror.Validation("Specialization only applies to doctors")
		}
		if clinicID != nil {
			if _, err := s.clinics.FindByID(ctx, *clinicID); err != nil {
				return nil, notFound(err, msgClinicNotFound)
			}
		}
		u.ClinicID = clinicID
		u.Specialization = strings.TrimSpace(req.Specialization)
	case models.RolePatient:
		if clinicID != nil || req.Specialization != "" {
			return nil, apperror.Validation("A patient cannot carry clinique or specialization")
		}
		if req.DateOfBirth != nil && req.DateOfBirth.After(time.Now()) {
			return nil, apperror.Validation("Date of birth cannot be in the future")
		}
		u.DateOfBirth = req.DateOfBirth
	}

	if _, err := s.users.FindByEmail(ctx, u.Email); err == nil {
		return nil, apperror.Conflict("User with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("User with this email already exists")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", u.ID.Hex()).Str("role", string(role)).Msg("user created")
	return u, nil
}

// FindByID returns the user. When expectedRole is set and differs from
// the stored role the user is reported as not found.
func (s *UserService) FindByID(ctx context.Context, id primitive.ObjectID, expectedRole models.Role) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	if expectedRole != "" && u.Role != expectedRole {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	return u, nil
}

// Authenticate checks login credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}
	return u, nil
}

func (s *UserService) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	if !role.Valid() {
		return nil, apperror.Validation("Invalid role %q", role)
	}
	return s.users.List(ctx, models.UserFilter{Role: role})
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateProfileRequest) (*models.User, error) {
	u, err := s.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}

	if req.FullName == nil && req.Phone == nil && req.Specialization == nil {
		return nil, apperror.Validation("No update fields provided")
	}
	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Specialization != nil {
		if u.Role != models.RoleDoctor {
			return nil, apperror.Validation("Specialization only applies to doctors")
		}
		u.Specialization = strings.TrimSpace(*req.Specialization)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err, msgUserNotFound)
	}
	s.log.Info().Str("user_id", id.Hex()).Msg("user deleted")
	return nil
}
