// File: /config/config.go
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseURL string
	Env         string

	// Session Configuration
	SessionTimeoutMinutes int

	// File Upload Configuration
	UploadDir string
}

func Load() *Config {
	sessionTimeout, _ := strconv.Atoi(getEnv("SESSION_TIMEOUT_MINUTES", "30"))
	if sessionTimeout <= 0 {
		sessionTimeout = 30
	}
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/chatmini?charset=utf8mb4&parseTime=True&loc=Local"),
		Env:         getEnv("APP_ENV", "dev"),

		// Session settings
		SessionTimeoutMinutes: sessionTimeout,

		// Upload settings
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
