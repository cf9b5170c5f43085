package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pkgstrings "shaadi/pkg/platform/strings"
)

// Server captures process-level configuration. All values come from the
// environment so main stays lean.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	JWTSigningKey string
	TokenTTL      time.Duration

	// OpsTokenHash is the bcrypt hash of the X-Ops-Token accepted by the
	// admin bootstrap endpoint. Empty disables bootstrap entirely.
	OpsTokenHash string

	// Token issuance rate limiting (fixed window, per client IP).
	IssueRateLimit  int
	IssueRateWindow time.Duration

	// Audit event sink. Empty brokers means events are logged instead of
	// published.
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("SHAADI_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	jwtSigningKey := os.Getenv("SHAADI_JWT_SECRET")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := durationEnv("SHAADI_TOKEN_TTL", time.Hour)

	var brokers []string
	if raw := os.Getenv("SHAADI_KAFKA_BROKERS"); raw != "" {
		brokers = pkgstrings.DedupeAndTrim(strings.Split(raw, ","))
	}
	topic := os.Getenv("SHAADI_KAFKA_TOPIC")
	if topic == "" {
		topic = "shaadi.audit"
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("SHAADI_DATABASE_URL"),
		RedisURL:        os.Getenv("SHAADI_REDIS_URL"),
		JWTSigningKey:   jwtSigningKey,
		TokenTTL:        tokenTTL,
		OpsTokenHash:    os.Getenv("SHAADI_OPS_TOKEN_HASH"),
		IssueRateLimit:  intEnv("SHAADI_ISSUE_RATE_LIMIT", 30),
		IssueRateWindow: durationEnv("SHAADI_ISSUE_RATE_WINDOW", time.Minute),
		KafkaBrokers:    brokers,
		KafkaTopic:      topic,
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
