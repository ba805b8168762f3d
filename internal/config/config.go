package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	minSecretLength = 32
)

type Config struct {
	Port        string
	DBDriver    string
	DatabaseURL string
	DBPath      string
	CORSOrigins []string
	SeedOnStart bool
	JWT         JWTConfig
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

// Load reads configuration from the environment, optionally primed from a .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverPostgres))
	if driver != DriverPostgres && driver != DriverSQLite {
		return Config{}, fmt.Errorf("DB_DRIVER must be one of: %s, %s", DriverPostgres, DriverSQLite)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if driver == DriverPostgres && databaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL required")
	}

	secret := os.Getenv("JWT_SECRET")
	if len(secret) < minSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}

	expirationMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	if err != nil || expirationMinutes <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRATION_MINUTES must be a positive integer")
	}

	seedOnStart, err := strconv.ParseBool(getEnv("SEED_ON_START", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("SEED_ON_START must be a boolean")
	}

	return Config{
		Port:        getEnv("APP_PORT", "8080"),
		DBDriver:    driver,
		DatabaseURL: databaseURL,
		DBPath:      getEnv("DB_PATH", "employees.db"),
		CORSOrigins: splitOrigins(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		SeedOnStart: seedOnStart,
		JWT: JWTConfig{
			Secret:     secret,
			Issuer:     getEnv("JWT_ISSUER", "EmployeeManagementAPI"),
			Audience:   getEnv("JWT_AUDIENCE", "EmployeeManagementClient"),
			Expiration: time.Duration(expirationMinutes) * time.Minute,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimRight(strings.TrimSpace(part), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
