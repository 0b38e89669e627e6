package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret    string
	Issuer       string
	DbHost       string
	DbPort       string
	DbUser       string
	DbPassword   string
	DbName       string
	ServerPort   string
	IsProduction bool

	// PublicOrigin is the scheme+host used to derive share URLs and embed snippets.
	PublicOrigin   string
	AllowedOrigins []string

	RedisURL          string
	InactivityTimeout time.Duration
	TokenTTL          time.Duration

	BuilderMaxElements int
	BuilderSessionIdle time.Duration
	AuditRetentionDays int
	ReservedAdminEmail string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	OpenAIAPIKey string
	OpenAIModel  string

	GoogleSheetsCredentialsFile string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "formify")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "formify")
	ServerPort = getEnv("SERVER_PORT", "8080")
	IsProduction = getEnv("APP_ENV", "development") == "production"

	PublicOrigin = strings.TrimRight(getEnv("PUBLIC_ORIGIN", "http://localhost:3000"), "/")
	AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	RedisURL = getEnv("REDIS_URL", "redis://localhost:6379/0")
	InactivityTimeout = getDuration("INACTIVITY_TIMEOUT", 5*time.Minute)
	TokenTTL = getDuration("TOKEN_TTL", 24*time.Hour)

	BuilderMaxElements = getInt("BUILDER_MAX_ELEMENTS", 50)
	BuilderSessionIdle = getDuration("BUILDER_SESSION_IDLE", 30*time.Minute)
	AuditRetentionDays = getInt("AUDIT_RETENTION_DAYS", 30)
	ReservedAdminEmail = getEnv("RESERVED_ADMIN_EMAIL", "admin@formify.local")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "formify-exports")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	OpenAIModel = getEnv("OPENAI_MODEL", "gpt-4o-mini")

	GoogleSheetsCredentialsFile = getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", "")

	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnv("SMTP_PORT", "587")
	SMTPUsername = getEnv("SMTP_USERNAME", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	SMTPFrom = getEnv("SMTP_FROM", "")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
