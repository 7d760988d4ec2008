package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// MinBcryptCost is the lowest work factor accepted for password hashes.
const MinBcryptCost = 10

type Config struct {
	Env      string `envconfig:"ENV" default:"production"`
	Port     string `envconfig:"API_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver   string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"clinique"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"12"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	SMSEnabled  bool   `envconfig:"SMS_ENABLED" default:"false"`
	TextbeltURL string `envconfig:"TEXTBELT_URL" default:"https://textbelt.com/text"`
	TextbeltKey string `envconfig:"TEXTBELT_API_KEY"`

	Seed Seed `envconfig:"SEED"`
}

// Seed describes the default tenant provisioned on first run.
type Seed struct {
	OnStart       bool   `envconfig:"ON_START" default:"true"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@clinique.tn"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"ChangeMe#2024"`
	AdminName     string `envconfig:"ADMIN_NAME" default:"Clinique Admin"`
	ClinicName    string `envconfig:"CLINIC_NAME" default:"Clinique Centrale"`
	ClinicEmail   string `envconfig:"CLINIC_EMAIL" default:"contact@clinique.tn"`
	ClinicPhone   string `envconfig:"CLINIC_PHONE" default:"+21670000000"`
	ClinicAddress string `envconfig:"CLINIC_ADDRESS" default:"Tunis"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.BcryptCost < MinBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be at least %d, got %d", MinBcryptCost, c.BcryptCost)
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.SMSEnabled && c.TextbeltKey == "" {
		return errors.New("TEXTBELT_API_KEY is required when SMS_ENABLED=true")
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
