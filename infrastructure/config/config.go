package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage driver names.
const (
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Config holds all application configuration, loaded from the environment.
type Config struct {
	// Server
	ServerAddress string
	Environment   string

	// Storage
	StorageDriver string
	AWSRegion     string
	DynamoDBTable string
	URLIndexName  string // GSI1 - share-slug lookups
	ListIndexName string // GSI2 - newest-first document listing
	UserIndexName string // GSI1 on drafts - per-user draft queries

	// Lambda
	IsLambda bool

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Rate limiting (requests per minute per identifier)
	PublicRPM        int
	AuthenticatedRPM int
	UploadRPM        int

	// HTTP
	EnableCORS     bool
	AllowedOrigins []string

	// Logging
	LogLevel string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StorageDriver: getEnv("STORAGE_DRIVER", DriverDynamoDB),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "wishbloom"),
		URLIndexName:  getEnv("URL_INDEX_NAME", "UrlIndex"),
		ListIndexName: getEnv("LIST_INDEX_NAME", "ListIndex"),
		UserIndexName: getEnv("USER_INDEX_NAME", "UserIndex"),

		IsLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "wishbloom"),

		PublicRPM:        getEnvInt("RATE_LIMIT_PUBLIC_RPM", 60),
		AuthenticatedRPM: getEnvInt("RATE_LIMIT_AUTHENTICATED_RPM", 120),
		UploadRPM:        getEnvInt("RATE_LIMIT_UPLOAD_RPM", 10),

		EnableCORS:     getEnvBool("ENABLE_CORS", true),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverDynamoDB, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %s", c.StorageDriver)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.IsProduction() && c.StorageDriver == DriverMemory {
		return fmt.Errorf("memory storage driver is not allowed in production")
	}
	return nil
}

// IsProduction reports whether this is a production deployment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}
