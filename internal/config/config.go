package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Tax    TaxConfig
	Fields FieldsConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TaxConfig holds bill calculation settings.
type TaxConfig struct {
	// DefaultStateCode is the seller state used when no company record exists.
	DefaultStateCode string `mapstructure:"default_state_code"`
}

// FieldsConfig holds dynamic field store settings.
type FieldsConfig struct {
	SeedDefaults bool `mapstructure:"seed_defaults"`
	MigrateBatch int  `mapstructure:"migrate_batch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds bearer token verification settings.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds settings for the bill export archive.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbill")
	v.SetDefault("db.password", "gstbill_secret")
	v.SetDefault("db.name", "gstbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "gstbill")

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "gstbill-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("tax.default_state_code", "27")
	v.SetDefault("fields.seed_defaults", false)
	v.SetDefault("fields.migrate_batch", 500)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "GSTBILL_SERVER_PORT",
		"server.read_timeout":    "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":     "GSTBILL_SERVER_ENVIRONMENT",
		"db.host":                "GSTBILL_DB_HOST",
		"db.port":                "GSTBILL_DB_PORT",
		"db.user":                "GSTBILL_DB_USER",
		"db.password":            "GSTBILL_DB_PASSWORD",
		"db.name":                "GSTBILL_DB_NAME",
		"db.sslmode":             "GSTBILL_DB_SSLMODE",
		"db.max_open":            "GSTBILL_DB_MAX_OPEN",
		"db.max_idle":            "GSTBILL_DB_MAX_IDLE",
		"jwt.secret":             "GSTBILL_JWT_SECRET",
		"jwt.issuer":             "GSTBILL_JWT_ISSUER",
		"s3.enabled":             "GSTBILL_S3_ENABLED",
		"s3.region":              "GSTBILL_S3_REGION",
		"s3.bucket":              "GSTBILL_S3_BUCKET",
		"s3.endpoint":            "GSTBILL_S3_ENDPOINT",
		"s3.access_key":          "GSTBILL_S3_ACCESS_KEY",
		"s3.secret_key":          "GSTBILL_S3_SECRET_KEY",
		"s3.presign_expiry":      "GSTBILL_S3_PRESIGN_EXPIRY",
		"log.level":              "GSTBILL_LOG_LEVEL",
		"log.format":             "GSTBILL_LOG_FORMAT",
		"cors.allowed_origins":   "GSTBILL_CORS_ALLOWED_ORIGINS",
		"tax.default_state_code": "GSTBILL_TAX_DEFAULT_STATE_CODE",
		"fields.seed_defaults":   "GSTBILL_FIELDS_SEED_DEFAULTS",
		"fields.migrate_batch":   "GSTBILL_FIELDS_MIGRATE_BATCH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if GSTBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Tax = TaxConfig{
		DefaultStateCode: v.GetString("tax.default_state_code"),
	}
	if cfg.Tax.DefaultStateCode == "" {
		return nil, fmt.Errorf("config: tax.default_state_code must not be empty")
	}

	cfg.Fields = FieldsConfig{
		SeedDefaults: v.GetBool("fields.seed_defaults"),
		MigrateBatch: v.GetInt("fields.migrate_batch"),
	}
	if cfg.Fields.MigrateBatch <= 0 {
		cfg.Fields.MigrateBatch = 500
	}

	return cfg, nil
}
