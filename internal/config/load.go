package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. SIGNDECK_SERVER_PORT for server.port.
const EnvPrefix = "SIGNDECK"

// Load reads configuration from defaults, an optional .env file, an optional
// signdeck.yaml in the working directory, and SIGNDECK_ environment
// variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for signdeck.yaml and tolerates its absence; a non-empty
// path must exist.
func LoadFile(path string) (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("signdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags and the cross-field storage
// rules.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(validateStorage, StorageConfig{})
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func validateStorage(sl validator.StructLevel) {
	s := sl.Current().Interface().(StorageConfig)
	if s.Backend != BackendMinio {
		return
	}
	if strings.TrimSpace(s.Minio.Endpoint) == "" {
		sl.ReportError(s.Minio.Endpoint, "Endpoint", "endpoint", "required_for_minio", "")
	}
	if strings.TrimSpace(s.Minio.Bucket) == "" {
		sl.ReportError(s.Minio.Bucket, "Bucket", "bucket", "required_for_minio", "")
	}
}

// Every key is registered with a default so that AutomaticEnv overrides
// are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.score_key", "memory_scores")
	v.SetDefault("storage.sqlite_path", "signdeck.db")
	v.SetDefault("storage.postgres_url", "")
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "signdeck")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60*24*30)

	v.SetDefault("scoring.demotion", 2)
	v.SetDefault("scoring.promotion", 1)

	v.SetDefault("session.default_count", 10)
	v.SetDefault("session.quiz_registry_size", 128)

	v.SetDefault("catalog.path", "")
}
