package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Identity IdentityConfig
	SMTP     SMTPConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	FrontendURL string // verification links point back here
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// IdentityConfig selects and configures the identity provider adapter.
// Provider "firebase" talks to the Identity Toolkit REST API; "embedded"
// runs the in-process provider for development and tests.
type IdentityConfig struct {
	Provider   string
	APIKey     string // firebase web API key
	BaseURL    string // override for emulator endpoints
	AdminToken string // service-account bearer for admin surfaces
	JWTSecret  string // embedded provider token signing key
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// RedisConfig enables the token-verification cache when URL is set.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// NATSConfig enables task event publishing when URL is set.
type NATSConfig struct {
	URL string
}

type LogConfig struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; environment variables win anyway.
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Taskboard API"),
			Port:        getEnv("APP_PORT", "4000"),
			Env:         getEnv("APP_ENV", "development"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "taskboard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Identity: IdentityConfig{
			Provider:   getEnv("IDENTITY_PROVIDER", "embedded"),
			APIKey:     getEnv("IDENTITY_API_KEY", ""),
			BaseURL:    getEnv("IDENTITY_BASE_URL", ""),
			AdminToken: getEnv("IDENTITY_ADMIN_TOKEN", ""),
			JWTSecret:  getEnv("IDENTITY_JWT_SECRET", "change-this-secret"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "2525"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "Taskboard <no-reply@taskboard.local>"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
