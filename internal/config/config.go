package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Files    FilesConfig    `yaml:"files"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	BodyLimit       string        `yaml:"body_limit"       env:"SERVER_BODY_LIMIT"       env-default:"16M"`
}

// DatabaseConfig holds PostgreSQL connection settings. The same DSN feeds
// both the gorm connection and the pgx pool used by the import path.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"               env:"DATABASE_DSN"               env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"         env:"DATABASE_MAX_CONNS"         env-default:"25"`
	MinConns        int32         `yaml:"min_conns"         env:"DATABASE_MIN_CONNS"         env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DATABASE_MAX_CONN_LIFETIME" env-default:"1h"`
}

// FilesConfig holds file storage settings.
type FilesConfig struct {
	BaseDir       string `yaml:"base_dir"        env:"FILES_BASE_DIR"        env-default:"./data"`
	MaxUploadSize int64  `yaml:"max_upload_size" env:"FILES_MAX_UPLOAD_SIZE" env-default:"5242880"`
}

// AuthConfig holds JWT and credential flow settings.
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"     env:"AUTH_JWT_SECRET"     env-required:"true"`
	JWTIssuer    string        `yaml:"jwt_issuer"     env:"AUTH_JWT_ISSUER"     env-default:"faithful-registry"`
	TokenTTL     time.Duration `yaml:"token_ttl"      env:"AUTH_TOKEN_TTL"      env-default:"24h"`
	OTPTTL       time.Duration `yaml:"otp_ttl"        env:"AUTH_OTP_TTL"        env-default:"5m"`
	OTPCooldown  time.Duration `yaml:"otp_cooldown"   env:"AUTH_OTP_COOLDOWN"   env-default:"1m"`
	ResetTTL     time.Duration `yaml:"reset_ttl"      env:"AUTH_RESET_TTL"      env-default:"30m"`
	ResetBaseURL string        `yaml:"reset_base_url" env:"AUTH_RESET_BASE_URL" env-default:"http://localhost:8080/reset-password"`
}

// EmailConfig holds outbound mail settings. With no API key the service
// falls back to a logging sender, which keeps local development keyless.
type EmailConfig struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"EMAIL_RESEND_API_KEY"`
	From         string `yaml:"from"           env:"EMAIL_FROM"           env-default:"Faithful Registry <no-reply@faithful-registry.local>"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Validate enforces invariants cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth jwt_secret must be at least 32 characters")
	}
	if c.Auth.OTPTTL <= 0 || c.Auth.ResetTTL <= 0 {
		return fmt.Errorf("auth ttls must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
