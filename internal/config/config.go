package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

// Payment modes. Redirect hands the browser to the processor's hosted
// page; embedded collects card fields and settles through the backend
// in one call.
const (
	PaymentModeRedirect = "redirect"
	PaymentModeEmbedded = "embedded"
)

type Config struct {
	BackendBaseURL    string
	PublicBaseURL     string
	MongoURI          string
	DBName            string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	AdminEmail        string
	AdminPasswordHash string
	PaymentMode       string
	HTTPTimeout       time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		BackendBaseURL:    getEnvOrDefault("BACKEND_BASE_URL", "http://localhost:8081/api"),
		PublicBaseURL:     getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:3000"),
		MongoURI:          getEnvOrDefault("MONGO_URI", ""),
		DBName:            getEnvOrDefault("DB_NAME", "techstore"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:    getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		AdminEmail:        getEnvOrDefault("ADMIN_EMAIL", "admin@techstore.com"),
		AdminPasswordHash: getEnvOrDefault("ADMIN_PASSWORD_HASH", ""),
		PaymentMode:       normalizePaymentMode(getEnvOrDefault("PAYMENT_MODE", PaymentModeRedirect)),
		HTTPTimeout:       getDurationEnv("HTTP_TIMEOUT", 10, time.Second),
	}
}

func normalizePaymentMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case PaymentModeEmbedded:
		return PaymentModeEmbedded
	case PaymentModeRedirect:
		return PaymentModeRedirect
	default:
		log.Printf("unknown PAYMENT_MODE %q, using %s", mode, PaymentModeRedirect)
		return PaymentModeRedirect
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
