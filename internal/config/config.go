package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the resume archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ScoringConfig holds settings for the external resume scoring service.
// An empty EndpointURL is a deployment error surfaced by the scoring client,
// never a silent no-op.
type ScoringConfig struct {
	EndpointURL  string
	TimeoutSec   int
	MaxAttempts  int
	BaseDelaySec int
}

// RedactionConfig holds settings for the external PII redaction service.
// An empty URL degrades to pass-through redaction (logged as a security warning).
type RedactionConfig struct {
	URL        string
	TimeoutSec int
}

// EmailConfig holds settings for the transactional email provider (Brevo).
type EmailConfig struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

// PipelineConfig bounds a single application-processing run.
type PipelineConfig struct {
	MaxTextLength  int
	MaxUploadBytes int64
	TimeoutSec     int
	NotifyQueueCap int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables at process start and passed
// into component constructors; no component performs ad hoc environment reads.
type AppConfig struct {
	AppHost   string
	Port      string
	LogJSON   bool
	Debug     bool
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Scoring   ScoringConfig
	Redaction RedactionConfig
	Email     EmailConfig
	Pipeline  PipelineConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		LogJSON: getEnvBool("LOG_JSON", true),
		Debug:   getEnvBool("DEBUG", false),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "resumes"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Scoring: ScoringConfig{
			EndpointURL:  getEnv("SCORING_API_URL", ""),
			TimeoutSec:   getEnvInt("SCORING_TIMEOUT_SEC", 30),
			MaxAttempts:  getEnvInt("SCORING_MAX_ATTEMPTS", 5),
			BaseDelaySec: getEnvInt("SCORING_BASE_DELAY_SEC", 1),
		},
		Redaction: RedactionConfig{
			URL:        getEnv("REDACTION_API_URL", ""),
			TimeoutSec: getEnvInt("REDACTION_TIMEOUT_SEC", 10),
		},
		Email: EmailConfig{
			APIKey:      getEnv("BREVO_API_KEY", ""),
			SenderEmail: getEnv("SENDER_EMAIL", "recruitment@abcdbank.com"),
			SenderName:  getEnv("SENDER_NAME", "HR Team"),
		},
		Pipeline: PipelineConfig{
			MaxTextLength:  getEnvInt("MAX_TEXT_LENGTH", 5000),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
			TimeoutSec:     getEnvInt("PIPELINE_TIMEOUT_SEC", 120),
			NotifyQueueCap: getEnvInt("NOTIFY_QUEUE_CAP", 64),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
