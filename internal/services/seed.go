package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/config"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

// SeedService provisions the bootstrap admin and its default clinic.
type SeedService struct {
	users   *UserService
	clinics *ClinicService
	tx      repository.TxRunner
	cfg     config.Seed
	log     zerolog.Logger
}

func NewSeedService(store *repository.Store, users *UserService, clinics *ClinicService, cfg config.Seed, log zerolog.Logger) *SeedService {
	return &SeedService{
		users:   users,
		clinics: clinics,
		tx:      store.Tx,
		cfg:     cfg,
		log:     log.With().Str("service", "seed").Logger(),
	}
}

// Seed creates the admin and the default clinic unless the admin email is
// already taken. A default clinic left over from an earlier seed is kept and
// only the admin is recreated. It reports whether anything was written.
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	if _, err := s.users.FindByEmail(ctx, s.cfg.AdminEmail); err == nil {
		s.log.Debug().Str("email", s.cfg.AdminEmail).Msg("seed admin already present")
		return false, nil
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return false, err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		admin, err := s.users.CreateUser(ctx, models.CreateUserRequest{
			FullName: s.cfg.AdminName,
			Email:    s.cfg.AdminEmail,
			Password: s.cfg.AdminPassword,
		}, models.RoleAdmin)
		if err != nil {
			return err
		}
		_, err = s.clinics.CreateClinic(ctx, models.CreateClinicRequest{
			Name:    s.cfg.ClinicName,
			Address: s.cfg.ClinicAddress,
			Phone:   s.cfg.ClinicPhone,
			Email:   s.cfg.ClinicEmail,
		}, admin.ID)
		if apperror.Is(err, apperror.KindConflict) {
			// The admin is still required when the default clinic survived it.
			s.log.Warn().Str("clinic", s.cfg.ClinicName).Msg("default clinic already exists, keeping it")
			return nil
		}
		return err
	})
	if apperror.Is(err, apperror.KindConflict) {
		if _, lookupErr := s.users.FindByEmail(ctx, s.cfg.AdminEmail); lookupErr == nil {
			s.log.Info().Msg("seed raced with another writer, skipping")
			return false, nil
		}
	}
	if err != nil {
		return false, err
	}

	s.log.Info().Str("email", s.cfg.AdminEmail).Str("clinic", s.cfg.ClinicName).Msg("seed data created")
	return true, nil
}
