package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr    string
	DatabaseDSN string
	JWTSecret   string
	AdminEmail  string
	AdminPass   string

	// Cross-origin allow-list for the admin listing endpoint.
	AllowedOrigins []string

	// Blob storage: "fs" or "s3".
	StorageBackend string
	FilesDir       string
	PublicBaseURL  string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3UseSSL       bool

	// Notification email. Empty SMTPHost disables real delivery.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string

	GelfAddr string
}

func Load() *Config {
	return &Config{
		HTTPAddr:    getEnv("ONBOARDING_ADDR", ":8080"),
		DatabaseDSN: getEnv("ONBOARDING_DB_DSN", "host=127.0.0.1 user=onboarding dbname=onboarding port=5432 sslmode=disable"),
		JWTSecret:   getEnv("ONBOARDING_JWT_SECRET", "onboarding-dev-secret-change-me"),
		AdminEmail:  getEnv("ONBOARDING_ADMIN_EMAIL", "admin@onboarding.local"),
		AdminPass:   getEnv("ONBOARDING_ADMIN_PASS", "admin123"),

		AllowedOrigins: getEnvList("ONBOARDING_ALLOWED_ORIGINS",
			"http://localhost:3000", "https://evergreenwebsolutions.ca"),

		StorageBackend: getEnv("ONBOARDING_STORAGE", "fs"),
		FilesDir:       getEnv("ONBOARDING_FILES_DIR", "./data/files"),
		PublicBaseURL:  getEnv("ONBOARDING_PUBLIC_URL", "http://localhost:8080"),
		S3Endpoint:     getEnv("ONBOARDING_S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("ONBOARDING_S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("ONBOARDING_S3_SECRET_KEY", ""),
		S3Bucket:       getEnv("ONBOARDING_S3_BUCKET", "onboarding-uploads"),
		S3UseSSL:       getEnv("ONBOARDING_S3_SSL", "true") == "true",

		SMTPHost: getEnv("ONBOARDING_SMTP_HOST", ""),
		SMTPPort: getEnvInt("ONBOARDING_SMTP_PORT", 587),
		SMTPUser: getEnv("ONBOARDING_SMTP_USER", ""),
		SMTPPass: getEnv("ONBOARDING_SMTP_PASS", ""),
		MailFrom: getEnv("ONBOARDING_MAIL_FROM", "no-reply@evergreenwebsolutions.ca"),
		MailTo:   getEnv("ONBOARDING_MAIL_TO", "admin@evergreenwebsolutions.ca"),

		GelfAddr: getEnv("ONBOARDING_GELF_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func getEnvList(key string, fallback ...string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
