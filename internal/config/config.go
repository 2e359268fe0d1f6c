package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// devFallbackSecret is used when no JWT secret is configured outside
// production. Production refuses to start without an explicit secret.
const devFallbackSecret = "orgpulse-dev-secret-do-not-use-in-prod"

// Config holds all configuration for the application
type Config struct {
	AppMode       string
	Port          string
	Database      DatabaseConfig
	JWT           JWTConfig
	Cookie        CookieConfig
	SystemAccount SystemAccountConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// SystemAccountConfig identifies the reserved system account. It is
// authenticated by token alone, has no users row, is treated as admin
// unconditionally, and never appears in user listings. Making it
// explicit configuration keeps the trust escalation auditable.
type SystemAccountConfig struct {
	ID    uint
	Email string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtConfig, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:       appMode,
		Port:          getEnv("PORT", "3000"),
		Database:      loadDatabaseConfig(appMode),
		JWT:           jwtConfig,
		Cookie:        loadCookieConfig(appMode),
		SystemAccount: loadSystemAccountConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("Configuration loaded [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "orgpulse_survey"),
	}
}

// loadJWTConfig loads JWT config. A missing secret is fatal in prod;
// dev falls back to a fixed secret with a logged warning.
func loadJWTConfig(mode string) (JWTConfig, error) {
	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		if mode == "prod" {
			return JWTConfig{}, fmt.Errorf("JWT_SECRET is required in prod mode")
		}
		log.Println("Warning: JWT_SECRET not set, using development fallback secret")
		secret = devFallbackSecret
	}

	return JWTConfig{Secret: secret}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	secureDefault := "false"
	if mode == "prod" {
		secureDefault = "true"
	}
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", secureDefault))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadSystemAccountConfig loads the reserved account identity
func loadSystemAccountConfig() SystemAccountConfig {
	id, err := strconv.ParseUint(getEnv("SYSTEM_ACCOUNT_ID", "999999"), 10, 32)
	if err != nil {
		id = 999999
	}

	return SystemAccountConfig{
		ID:    uint(id),
		Email: getEnv("SYSTEM_ACCOUNT_EMAIL", "system@orgpulse.local"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://survey.orgpulse.app"
	}
	return origins
}
