package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server" envPrefix:"SERVER_"`
	Database      DatabaseConfig      `yaml:"database" envPrefix:"DB_"`
	Redis         RedisConfig         `yaml:"redis" envPrefix:"REDIS_"`
	JWT           JWTConfig           `yaml:"jwt" envPrefix:"JWT_"`
	Gateway       GatewayConfig       `yaml:"gateway" envPrefix:"GATEWAY_"`
	SMTP          SMTPConfig          `yaml:"smtp" envPrefix:"SMTP_"`
	Notifications NotificationsConfig `yaml:"notifications" envPrefix:"NOTIFICATIONS_"`
	Logging       LoggingConfig       `yaml:"logging" envPrefix:"LOG_"`
}

// ServerConfig configures the HTTP listener and file uploads.
type ServerConfig struct {
	Port           string   `yaml:"port" env:"PORT"`
	Mode           string   `yaml:"mode" env:"MODE"`
	StoragePath    string   `yaml:"storage_path" env:"STORAGE_PATH"`
	BaseURL        string   `yaml:"base_url" env:"BASE_URL"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig configures the PostgreSQL pool used by the local gateway.
type DatabaseConfig struct {
	Host            string        `yaml:"host" env:"HOST"`
	Port            string        `yaml:"port" env:"PORT"`
	User            string        `yaml:"user" env:"USER"`
	Password        string        `yaml:"password" env:"PASSWORD"`
	DBName          string        `yaml:"dbname" env:"NAME"`
	SSLMode         string        `yaml:"sslmode" env:"SSLMODE"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
	AutoMigrate     bool          `yaml:"auto_migrate" env:"AUTO_MIGRATE"`
}

// RedisConfig configures the session store. An empty Addr keeps sessions in
// process memory.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// JWTConfig configures access tokens issued by the local gateway.
type JWTConfig struct {
	Secret                string        `yaml:"secret" env:"SECRET"`
	AccessTokenExpiration time.Duration `yaml:"access_token_expiration" env:"ACCESS_TOKEN_EXPIRATION"`
	Issuer                string        `yaml:"issuer" env:"ISSUER"`
}

// Gateway providers.
const (
	ProviderLocal  = "local"
	ProviderRemote = "remote"
)

// GatewayConfig selects and configures the identity backend.
type GatewayConfig struct {
	Provider       string        `yaml:"provider" env:"PROVIDER"`
	URL            string        `yaml:"url" env:"URL"`
	AnonKey        string        `yaml:"anon_key" env:"ANON_KEY"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
	// Sign-in attempts allowed per email within one minute.
	SignInAttempts int `yaml:"sign_in_attempts" env:"SIGN_IN_ATTEMPTS"`
}

// SMTPConfig configures password reset mail.
type SMTPConfig struct {
	Host      string `yaml:"host" env:"HOST"`
	Port      int    `yaml:"port" env:"PORT"`
	Username  string `yaml:"username" env:"USERNAME"`
	Password  string `yaml:"password" env:"PASSWORD"`
	FromName  string `yaml:"from_name" env:"FROM_NAME"`
	FromEmail string `yaml:"from_email" env:"FROM_EMAIL"`
}

// NotificationsConfig configures the notification queue.
type NotificationsConfig struct {
	ToastTTL time.Duration `yaml:"toast_ttl" env:"TOAST_TTL"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// LoadConfig loads configuration from a file, a .env file and environment
// variables, in that order of precedence from lowest to highest.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./uploads"
	config.Server.BaseURL = "http://localhost:8080"
	config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	config.Server.ReadTimeout = 10 * time.Second
	config.Server.WriteTimeout = 10 * time.Second
	config.Server.ShutdownTimeout = 10 * time.Second

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "studyhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = time.Hour
	config.Database.AutoMigrate = true

	config.JWT.AccessTokenExpiration = time.Hour
	config.JWT.Issuer = "studyhub.app"

	config.Gateway.Provider = ProviderLocal
	config.Gateway.RequestTimeout = 10 * time.Second
	config.Gateway.SignInAttempts = 10

	config.SMTP.Port = 587
	config.SMTP.FromName = "StudyHub"
	config.SMTP.FromEmail = "no-reply@studyhub.app"

	config.Notifications.ToastTTL = 4 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	var errs []error

	switch config.Gateway.Provider {
	case ProviderLocal:
		if config.Database.Host == "" {
			errs = append(errs, errors.New("database host is required for the local gateway"))
		}
		if config.JWT.Secret == "" {
			errs = append(errs, errors.New("JWT secret is required for the local gateway"))
		}
		if config.JWT.AccessTokenExpiration <= 0 {
			errs = append(errs, errors.New("JWT access token expiration must be positive"))
		}
	case ProviderRemote:
		if config.Gateway.URL == "" {
			errs = append(errs, errors.New("gateway url is required for the remote gateway"))
		}
		if config.Gateway.AnonKey == "" {
			errs = append(errs, errors.New("gateway anon key is required for the remote gateway"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown gateway provider %q", config.Gateway.Provider))
	}

	if config.Notifications.ToastTTL <= 0 {
		errs = append(errs, errors.New("notifications toast ttl must be positive"))
	}

	return errors.Join(errs...)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production"
}
