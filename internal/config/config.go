package config

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth" validate:"required"`
	Scoring ScoringConfig `mapstructure:"scoring" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMinio    = "minio"
)

// StorageConfig selects and configures the key-value backend that holds
// memory scores.
type StorageConfig struct {
	Backend     string      `mapstructure:"backend" validate:"required,oneof=memory sqlite postgres minio"`
	ScoreKey    string      `mapstructure:"score_key" validate:"required"`
	SQLitePath  string      `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
	PostgresURL string      `mapstructure:"postgres_url" validate:"required_if=Backend postgres"`
	Minio       MinioConfig `mapstructure:"minio"`
}

// MinioConfig holds S3-compatible object storage settings. Endpoint and
// Bucket are required when the minio backend is selected.
type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// AuthConfig contains learner token settings. An empty JWTSecret disables
// authentication and every request acts on the default learner.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// ScoringConfig tunes how ratings move an item's memory score.
type ScoringConfig struct {
	Demotion  int `mapstructure:"demotion" validate:"gt=0"`
	Promotion int `mapstructure:"promotion" validate:"gt=0"`
}

// SessionConfig contains session selection and quiz settings.
type SessionConfig struct {
	DefaultCount     int `mapstructure:"default_count" validate:"gt=0"`
	QuizRegistrySize int `mapstructure:"quiz_registry_size" validate:"gt=0"`
}

// CatalogConfig points at the vocabulary catalog file (.json, .csv or .xlsx).
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}
