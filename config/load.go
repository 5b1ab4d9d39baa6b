package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bookrental/service/pricing"
)

// Load reads the optional YAML file at path, then applies environment
// overrides and defaults. An empty path skips the file.
func Load(path string) (App, error) {
	cfg := App{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Port = getenv("APP_PORT", cfg.Port, "8080")
	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL, "")
	cfg.JWTSecret = getenv("JWT_SECRET", cfg.JWTSecret, "local_dev_secret")
	cfg.Env = getenv("APP_ENV", cfg.Env, "dev")
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel, "info")
	cfg.RedisAddr = getenv("REDIS_ADDR", cfg.RedisAddr, "")
	cfg.RedisPassword = getenv("REDIS_PASSWORD", cfg.RedisPassword, "")

	cfg.Minio.Endpoint = getenv("MINIO_ENDPOINT", cfg.Minio.Endpoint, "")
	cfg.Minio.AccessKey = getenv("MINIO_ACCESS_KEY", cfg.Minio.AccessKey, "")
	cfg.Minio.SecretKey = getenv("MINIO_SECRET_KEY", cfg.Minio.SecretKey, "")
	cfg.Minio.Bucket = getenv("MINIO_BUCKET", cfg.Minio.Bucket, "bookrental-statements")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Minio.UseSSL = b
		}
	}

	cfg.SMTP.Host = getenv("SMTP_HOST", cfg.SMTP.Host, "")
	cfg.SMTP.Username = getenv("SMTP_USERNAME", cfg.SMTP.Username, "")
	cfg.SMTP.Password = getenv("SMTP_PASSWORD", cfg.SMTP.Password, "")
	cfg.SMTP.From = getenv("SMTP_FROM", cfg.SMTP.From, "noreply@bookrental.local")
	cfg.SMTP.Port = getint("SMTP_PORT", cfg.SMTP.Port, 587)

	cfg.PricingTierPolicy = getenv("PRICING_TIER_POLICY", cfg.PricingTierPolicy, "smallest-covering")
	cfg.ResetBaseURL = getenv("RESET_BASE_URL", cfg.ResetBaseURL, "http://localhost:8080/reset-password/")
	cfg.ResetTokenMinutes = getint("RESET_TOKEN_MINUTES", cfg.ResetTokenMinutes, 30)

	policy, err := pricing.PolicyByName(cfg.PricingTierPolicy)
	if err != nil {
		return cfg, err
	}
	cfg.PricingTierPolicy = policy.Name()

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg App) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.ResetTokenMinutes <= 0 {
		return errors.New("reset token lifetime must be positive")
	}
	if strings.EqualFold(cfg.Env, "prod") && cfg.JWTSecret == "local_dev_secret" {
		return errors.New("JWT_SECRET must be set in prod")
	}
	return nil
}

// getenv prefers the environment, then the file value, then def.
func getenv(k, file, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	if file != "" {
		return file
	}
	return def
}

func getint(k string, file, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if file != 0 {
		return file
	}
	return def
}
