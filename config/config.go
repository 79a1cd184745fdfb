package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	docshelfhttp "github.com/sagarc03/docshelf/http"
	"github.com/sagarc03/docshelf/userbackend"
)

// DefaultTokenSecret is the token signing key used when none is configured.
// It is only fit for local development.
const DefaultTokenSecret = "docshelf-development-secret"

const redacted = "********"

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for docshelf.
type Config struct {
	Env     string                  `mapstructure:"env" yaml:"env"`
	Server  ServerConfig            `mapstructure:"server" yaml:"server"`
	Storage StorageConfig           `mapstructure:"storage" yaml:"storage"`
	Auth    AuthConfig              `mapstructure:"auth" yaml:"auth"`
	CORS    docshelfhttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log     LogConfig               `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	MaxUploadSize   int64         `mapstructure:"max_upload_size" yaml:"max_upload_size" validate:"min=0"`
	ScratchDir      string        `mapstructure:"scratch_dir" yaml:"scratch_dir" validate:"required"`
	CookieSecure    bool          `mapstructure:"cookie_secure" yaml:"cookie_secure"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout" yaml:"download_timeout" validate:"min=0"` // write timeout for downloads; zero keeps the server's
}

// StorageConfig selects and configures the object storage backend.
type StorageConfig struct {
	Driver       string `mapstructure:"driver" yaml:"driver" validate:"required,oneof=s3 minio filesystem"`
	Bucket       string `mapstructure:"bucket" yaml:"bucket" validate:"required,min=3,max=63"`
	Region       string `mapstructure:"region" yaml:"region" validate:"required_if=Driver s3"`
	Endpoint     string `mapstructure:"endpoint" yaml:"endpoint" validate:"required_if=Driver minio"`
	AccessKey    string `mapstructure:"access_key" yaml:"access_key" validate:"required_if=Driver minio"`
	SecretKey    string `mapstructure:"secret_key" yaml:"secret_key" validate:"required_if=Driver minio"`
	UsePathStyle bool   `mapstructure:"use_path_style" yaml:"use_path_style"`
	Path         string `mapstructure:"path" yaml:"path" validate:"required_if=Driver filesystem"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Users       userbackend.UsersConfig `mapstructure:"users" yaml:"users"`
	TokenSecret string                  `mapstructure:"token_secret" yaml:"token_secret" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// IsProduction reports whether env names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Redacted returns a copy of c with secrets masked, for display.
func (c *Config) Redacted() Config {
	out := *c
	out.Storage.SecretKey = mask(out.Storage.SecretKey)
	out.Auth.Users.Password = mask(out.Auth.Users.Password)
	out.Auth.TokenSecret = mask(out.Auth.TokenSecret)
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return redacted
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":         "server.port",
	"scratch-dir":  "server.scratch_dir",
	"driver":       "storage.driver",
	"bucket":       "storage.bucket",
	"region":       "storage.region",
	"endpoint":     "storage.endpoint",
	"storage-path": "storage.path",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.max_upload_size", 50<<20)
	v.SetDefault("server.scratch_dir", "data")
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("server.download_timeout", 10*time.Minute)

	v.SetDefault("storage.driver", "s3")
	v.SetDefault("storage.bucket", "apt-pdf-browser")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_path_style", false)
	v.SetDefault("storage.path", "./storage")

	v.SetDefault("auth.users.allowed", []string{"user1", "user2", "user3"})
	v.SetDefault("auth.users.file", "")
	v.SetDefault("auth.users.password", "user123")
	v.SetDefault("auth.token_secret", DefaultTokenSecret)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST"})
	v.SetDefault("cors.allowed_headers", []string{})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables. PORT is honoured for platforms that
	// assign the listen port.
	v.SetEnvPrefix("DOCSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "DOCSHELF_SERVER_PORT", "PORT")

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
