package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Classifier ClassifierConfig
	Storage    StorageConfig
	Ingest     IngestConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"dealsense"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// ClassifierConfig holds external classifier configuration
type ClassifierConfig struct {
	APIKey        string        `envconfig:"CLASSIFIER_API_KEY"`
	BaseURL       string        `envconfig:"CLASSIFIER_BASE_URL"`
	Model         string        `envconfig:"CLASSIFIER_MODEL" default:"gpt-4o-mini"`
	MaxAttempts   int           `envconfig:"CLASSIFIER_MAX_ATTEMPTS" default:"3"`
	RetryInterval time.Duration `envconfig:"CLASSIFIER_RETRY_INTERVAL" default:"60s"`
}

// StorageConfig holds object storage configuration for raw CSV archiving.
// Archiving is skipped when Endpoint is empty.
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"dealsense-uploads"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// IngestConfig holds the accepted column-name synonyms per logical CSV field.
// Order matters: the first present non-empty column wins.
type IngestConfig struct {
	NameColumns       []string `envconfig:"INGEST_NAME_COLUMNS" default:"Nombre,name"`
	EmailColumns      []string `envconfig:"INGEST_EMAIL_COLUMNS" default:"Correo Electronico,email,Email"`
	PhoneColumns      []string `envconfig:"INGEST_PHONE_COLUMNS" default:"Numero de Telefono,telefono,phone"`
	SellerColumns     []string `envconfig:"INGEST_SELLER_COLUMNS" default:"Vendedor asignado,assigned_seller"`
	DateColumns       []string `envconfig:"INGEST_DATE_COLUMNS" default:"Fecha de la Reunion,meeting_date"`
	ClosedColumns     []string `envconfig:"INGEST_CLOSED_COLUMNS" default:"closed,Cerrado"`
	TranscriptColumns []string `envconfig:"INGEST_TRANSCRIPT_COLUMNS" default:"Transcripcion,transcript"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.Classifier.APIKey == "" {
		return fmt.Errorf("CLASSIFIER_API_KEY is required in production")
	}
	if c.Classifier.MaxAttempts < 1 {
		return fmt.Errorf("CLASSIFIER_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
