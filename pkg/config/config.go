package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Pacing    PacingConfig
	Session   SessionConfig
	Upload    UploadConfig
	Analytics AnalyticsConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

// BackendConfig points at the external statement analysis service.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// PacingConfig holds the minimum time each progress stage stays visible.
type PacingConfig struct {
	ParsingMin     time.Duration
	ClassifyingMin time.Duration
}

type SessionConfig struct {
	SecretKey  string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// UploadConfig limits accepted statements. BodyLimitMB caps the raw request
// and sits well above MaxSizeMB so oversized files still reach validation.
type UploadConfig struct {
	MaxSizeMB   int
	BodyLimitMB int
	Preflight   bool
}

// multipartSlack covers the form framing around the largest accepted file.
const multipartSlack = 1024 * 1024

func (c UploadConfig) MaxBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// BodyLimit is the request body ceiling handed to the HTTP server.
func (c UploadConfig) BodyLimit() int {
	limit := int64(c.BodyLimitMB) * 1024 * 1024
	if floor := c.MaxBytes() + multipartSlack; limit < floor {
		limit = floor
	}
	return int(limit)
}

type AnalyticsConfig struct {
	SafetyBufferPct float64
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	backendTimeout, _ := strconv.Atoi(getEnv("BACKEND_TIMEOUT", "180"))
	parsingMin, _ := strconv.Atoi(getEnv("PACING_PARSING_MIN_MS", "1500"))
	classifyingMin, _ := strconv.Atoi(getEnv("PACING_CLASSIFYING_MIN_MS", "1000"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	maxSize, _ := strconv.Atoi(getEnv("UPLOAD_MAX_SIZE_MB", "20"))
	bodyLimit, _ := strconv.Atoi(getEnv("UPLOAD_BODY_LIMIT_MB", "100"))
	bufferPct, err := strconv.ParseFloat(getEnv("SAFETY_BUFFER_PCT", "0.20"), 64)
	if err != nil {
		bufferPct = 0.20
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Backend: BackendConfig{
			URL:     getEnv("BACKEND_URL", "http://localhost:8000"),
			Timeout: time.Duration(backendTimeout) * time.Second,
		},
		Pacing: PacingConfig{
			ParsingMin:     time.Duration(parsingMin) * time.Millisecond,
			ClassifyingMin: time.Duration(classifyingMin) * time.Millisecond,
		},
		Session: SessionConfig{
			SecretKey:  getEnv("SESSION_SECRET_KEY", "your-secret-key-change-in-production"),
			TTL:        time.Duration(sessionTTL) * time.Hour,
			CookieName: getEnv("SESSION_COOKIE_NAME", "ledger_session"),
			Secure:     getBool("SESSION_COOKIE_SECURE", false),
		},
		Upload: UploadConfig{
			MaxSizeMB:   maxSize,
			BodyLimitMB: bodyLimit,
			Preflight:   getBool("PDF_PREFLIGHT", false),
		},
		Analytics: AnalyticsConfig{
			SafetyBufferPct: bufferPct,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultValue
	}
}
