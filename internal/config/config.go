// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	// BaseURL prefixes the verification links mailed to submitters.
	BaseURL     string
	EmailDomain string

	// Mail
	MailDriver string
	EmailUser  string
	EmailPass  string
	AdminEmail string
	SMTPHost   string
	SMTPPort   int

	// Listing storage
	StorageDriver string
	DataDir       string
	SQLitePath    string

	// Challenge store
	ChallengeStore string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Images
	ImageStore     string
	UploadDir      string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	RateLimitEnabled bool
	AllowedOrigins   []string
	LogLevel         string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the current environment without touching .env files.
func FromEnv() *Config {
	// PORT is what the original deployment sets; SERVER_PORT wins when both are present.
	port := getEnv("SERVER_PORT", getEnv("PORT", "3000"))

	return &Config{
		ServerPort:  port,
		Environment: getEnv("ENV", ""),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),
		EmailDomain: getEnv("EMAIL_DOMAIN", "@bue.edu.eg"),

		MailDriver: strings.ToLower(getEnv("MAIL_DRIVER", "smtp")),
		EmailUser:  getEnv("EMAIL_USER", ""),
		EmailPass:  getEnv("EMAIL_PASS", ""),
		AdminEmail: getEnv("ADMIN_EMAIL", ""),
		SMTPHost:   getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getEnvAsInt("SMTP_PORT", 587),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "file")),
		DataDir:       getEnv("DATA_DIR", "."),
		SQLitePath:    getEnv("SQLITE_PATH", "marketplace.db"),

		ChallengeStore: strings.ToLower(getEnv("CHALLENGE_STORE", "memory")),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),

		ImageStore:     strings.ToLower(getEnv("IMAGE_STORE", "local")),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "campus-market"),
		MinIOUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),

		RateLimitEnabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),
		AllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
	}
}

// IsProduction reports whether ENV is set to production.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

// AdminRecipient is where contact-view notifications go; it falls back to the sending account.
func (c *Config) AdminRecipient() string {
	if c.AdminEmail != "" {
		return c.AdminEmail
	}
	return c.EmailUser
}

// Validate checks driver names always, and credentials only in production.
func (c *Config) Validate() error {
	switch c.MailDriver {
	case "smtp", "log":
	default:
		return fmt.Errorf("unsupported MAIL_DRIVER %q", c.MailDriver)
	}
	switch c.StorageDriver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.ChallengeStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported CHALLENGE_STORE %q", c.ChallengeStore)
	}
	switch c.ImageStore {
	case "local", "minio":
	default:
		return fmt.Errorf("unsupported IMAGE_STORE %q", c.ImageStore)
	}
	if !strings.HasPrefix(c.EmailDomain, "@") {
		return fmt.Errorf("EMAIL_DOMAIN must start with '@', got %q", c.EmailDomain)
	}

	if !c.IsProduction() {
		return nil
	}
	missing := []string{}
	if c.MailDriver == "smtp" {
		if c.EmailUser == "" {
			missing = append(missing, "EMAIL_USER")
		}
		if c.EmailPass == "" {
			missing = append(missing, "EMAIL_PASS")
		}
	}
	if c.ImageStore == "minio" {
		if c.MinIOEndpoint == "" {
			missing = append(missing, "MINIO_ENDPOINT")
		}
		if c.MinIOAccessKey == "" {
			missing = append(missing, "MINIO_ACCESS_KEY")
		}
		if c.MinIOSecretKey == "" {
			missing = append(missing, "MINIO_SECRET_KEY")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required production environment variables: %v", missing)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as bool. Using default value.", key)
		return defaultValue
	}
	return boolValue
}

// getEnvAsList splits a comma-separated env var, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
