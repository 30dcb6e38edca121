package config

import (
	"os"
	"testing"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		}
	})
}

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "PORT", "ENV", "BASE_URL", "EMAIL_DOMAIN", "MAIL_DRIVER", "STORAGE_DRIVER", "CHALLENGE_STORE", "IMAGE_STORE", "REDIS_DB", "SMTP_PORT", "RATE_LIMIT_ENABLED", "CORS_ALLOWED_ORIGINS"} {
		unsetEnv(t, key)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := FromEnv()
	if cfg.ServerPort != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.ServerPort)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.EmailDomain != "@bue.edu.eg" || cfg.SMTPPort != 587 {
		t.Fatalf("unexpected mail defaults: %+v", cfg)
	}
	if cfg.StorageDriver != "file" || cfg.ChallengeStore != "memory" || cfg.ImageStore != "local" {
		t.Fatalf("unexpected driver defaults: %+v", cfg)
	}
	if !cfg.RateLimitEnabled {
		t.Fatal("rate limiting should default to on")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("expected any origin by default, got %v", cfg.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("BASE_URL", "https://market.example/")
	t.Setenv("STORAGE_DRIVER", "SQLITE")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := FromEnv()
	if cfg.ServerPort != "4000" {
		t.Fatalf("expected PORT fallback, got %q", cfg.ServerPort)
	}
	if cfg.BaseURL != "https://market.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.StorageDriver != "sqlite" {
		t.Fatalf("expected lowercased driver, got %q", cfg.StorageDriver)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("expected default redis db on parse failure, got %d", cfg.RedisDB)
	}
	if cfg.RateLimitEnabled {
		t.Fatal("expected rate limiting disabled")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}

	t.Setenv("SERVER_PORT", "5000")
	if got := FromEnv().ServerPort; got != "5000" {
		t.Fatalf("expected SERVER_PORT to win, got %q", got)
	}
}

func TestAdminRecipientFallsBackToSender(t *testing.T) {
	cfg := &Config{EmailUser: "market@bue.edu.eg"}
	if got := cfg.AdminRecipient(); got != "market@bue.edu.eg" {
		t.Fatalf("expected fallback to EMAIL_USER, got %q", got)
	}
	cfg.AdminEmail = "admin@bue.edu.eg"
	if got := cfg.AdminRecipient(); got != "admin@bue.edu.eg" {
		t.Fatalf("expected ADMIN_EMAIL, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{MailDriver: "smtp", StorageDriver: "file", ChallengeStore: "memory", ImageStore: "local", EmailDomain: "@bue.edu.eg"}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "development defaults", mutate: func(c *Config) {}},
		{name: "unknown storage driver", mutate: func(c *Config) { c.StorageDriver = "mongo" }, wantErr: true},
		{name: "unknown challenge store", mutate: func(c *Config) { c.ChallengeStore = "bolt" }, wantErr: true},
		{name: "domain without at sign", mutate: func(c *Config) { c.EmailDomain = "bue.edu.eg" }, wantErr: true},
		{name: "production without mail credentials", mutate: func(c *Config) { c.Environment = "production" }, wantErr: true},
		{name: "production with log mail driver", mutate: func(c *Config) { c.Environment = "production"; c.MailDriver = "log" }},
		{name: "production minio without keys", mutate: func(c *Config) {
			c.Environment = "production"
			c.EmailUser, c.EmailPass = "u", "p"
			c.ImageStore = "minio"
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
