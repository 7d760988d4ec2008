package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinique-api/internal/access"
	"github.com/harentsoaR/clinique-api/internal/config"
	"github.com/harentsoaR/clinique-api/internal/handlers"
	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/repository"
	"github.com/harentsoaR/clinique-api/internal/repository/memory"
	"github.com/harentsoaR/clinique-api/internal/services"
	"github.com/harentsoaR/clinique-api/internal/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinique-api",
		Short: "Multi-tenant clinic management API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Provision the bootstrap admin and default clinique",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			ctx := context.Background()
			app, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer app.close()

			created, err := app.seed.Seed(ctx)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if created {
				fmt.Printf("Created admin %s and clinique %q.\n", cfg.Seed.AdminEmail, cfg.Seed.ClinicName)
			} else {
				fmt.Println("Seed data already present, nothing to do.")
			}
			return nil
		},
	}
}

// setup loads the configuration, .env included, and builds the logger from
// it. On a config error the returned logger writes JSON.
func setup() (*config.Config, zerolog.Logger, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return nil, logger, err
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, logger, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return cfg, logger.Level(level), nil
}

// app is the wired object graph shared by every subcommand.
type app struct {
	store   *repository.Store
	handler *handlers.Handler
	seed    *services.SeedService
	close   func()
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{close: func() {}}

	var health func(context.Context) error
	switch cfg.StoreDriver {
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		db := client.Database(cfg.MongoDatabase)
		if err := repository.Ping(connectCtx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ping mongodb: %w", err)
		}
		if err := repository.EnsureIndexes(connectCtx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongodb")

		a.store = repository.NewMongoStore(db)
		a.close = func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("mongodb disconnect failed")
			}
		}
		health = func(ctx context.Context) error { return repository.Ping(ctx, db) }
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		a.store = memory.NewStore()
	}

	var notifier services.Notifier
	if cfg.SMSEnabled {
		notifier = services.NewSMSNotifier(cfg.TextbeltURL, cfg.TextbeltKey, logger)
	} else {
		notifier = services.NewLogNotifier(logger)
	}

	issuer, err := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		a.close()
		return nil, err
	}

	users := services.NewUserService(a.store, utils.Hasher{Cost: cfg.BcryptCost}, logger)
	clinics := services.NewClinicService(a.store, notifier, logger)

	a.seed = services.NewSeedService(a.store, users, clinics, cfg.Seed, logger)
	a.handler = &handlers.Handler{
		Users:           users,
		Clinics:         clinics,
		Equipment:       services.NewEquipmentService(a.store, logger),
		MedicalServices: services.NewMedicalServiceService(a.store, logger),
		Consultations:   services.NewConsultationService(a.store, logger),
		Prescriptions:   services.NewPrescriptionService(a.store, notifier, logger),
		Issuer:          issuer,
		Gate:            access.NewGate(access.DefaultPolicy),
		Log:             logger,
		Health:          health,
	}
	return a, nil
}

func runServer() error {
	cfg, logger, err := setup()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialise")
		return err
	}
	defer a.close()

	if cfg.Seed.OnStart {
		if _, err := a.seed.Seed(ctx); err != nil {
			logger.Error().Err(err).Msg("seed failed")
			return err
		}
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	a.handler.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server failed")
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
