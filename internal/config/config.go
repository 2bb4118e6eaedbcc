package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl      string
	JWTSecret  string
	ServerPort string

	// Sem DATABASE_URL a aplicação roda em modo demonstração (sqlite local).
	DemoMode   bool
	DemoDBPath string

	RedisURL string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string
	UploadDir         string

	BusinessTimezone string
	BusinessLocale   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env: %v", err)
	}

	cfg := &Config{
		DBUrl:      getEnv("DATABASE_URL", ""),
		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DemoMode:   getBool("DEMO_MODE", false),
		DemoDBPath: getEnv("DEMO_DB_PATH", "servicedesk-demo.db"),

		RedisURL: getEnv("REDIS_URL", ""),

		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicURL:       getEnv("S3_PUBLIC_URL", ""),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),

		BusinessTimezone: getEnv("BUSINESS_TIMEZONE", "America/Sao_Paulo"),
		BusinessLocale:   getEnv("BUSINESS_LOCALE", "pt-BR"),
	}

	if cfg.DBUrl == "" {
		cfg.DemoMode = true
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// S3Configured: bucket e credenciais presentes.
func (c *Config) S3Configured() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}
