package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	JWTSecret string

	// KDF work factor for password digests.
	KDFIterations int

	// Reservation engine knobs.
	HoldTTL       time.Duration
	SweepInterval time.Duration

	// Business hours; slots run hourly from OpenHour (inclusive) to CloseHour (exclusive).
	OpenHour  int
	CloseHour int

	PaymentTimeout time.Duration
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/barberbook?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:          dsn,
		JWTSecret:      secret,
		KDFIterations:  envInt("KDF_ITERATIONS", 120_000),
		HoldTTL:        time.Duration(envInt("HOLD_TTL_MIN", 15)) * time.Minute,
		SweepInterval:  time.Duration(envInt("SWEEP_INTERVAL_SEC", 30)) * time.Second,
		OpenHour:       envInt("OPEN_HOUR", 9),
		CloseHour:      envInt("CLOSE_HOUR", 17),
		PaymentTimeout: time.Duration(envInt("PAYMENT_TIMEOUT_SEC", 10)) * time.Second,
	}
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
