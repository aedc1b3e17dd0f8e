package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Planning PlanningConfig
}

type AppConfig struct {
	Port              string
	GinMode           string
	Environment       string
	LogFilePath       string
	CollationLanguage string
}

type DatabaseConfig struct {
	URL      string // postgres DSN; sqlite is used when empty
	DataPath string
}

type AuthConfig struct {
	JWTSecret     string
	MasterSecret  string
	AdminUsername string
	AdminPassword string
}

type PlanningConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// LoadEnvFile loads the first .env found in the working directory or its
// two parents. A missing file is not an error.
func LoadEnvFile() string {
	for _, p := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// Load reads .env (if any) and the process environment
func Load() *Config {
	LoadEnvFile()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only
func FromEnv() *Config {
	return &Config{
		App: AppConfig{
			Port:              getEnv("PORT", "8000"),
			GinMode:           getEnv("GIN_MODE", ""),
			Environment:       getEnv("APP_ENV", "development"),
			LogFilePath:       getEnv("LOG_FILE_PATH", "planning-view.log"),
			CollationLanguage: getEnv("COLLATION_LANGUAGE", "und"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			DataPath: getEnv("DATA_PATH", "api_keys.db"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			MasterSecret:  getEnv("API_MASTER_SECRET", ""),
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Planning: PlanningConfig{
			BaseURL: getEnv("PLANNING_API_URL", "http://localhost:8080"),
			APIKey:  getEnv("PLANNING_API_KEY", ""),
			Timeout: getEnvAsDuration("PLANNING_API_TIMEOUT", 15*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("30s") or plain seconds ("30")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
