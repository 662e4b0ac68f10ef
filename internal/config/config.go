package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	AuthMode      string        // mock | strict
	MockLatency   time.Duration // artificial per-operation delay
	TransferDelay time.Duration // simulated proof-of-payment upload delay
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "dukkan.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./dukkan.log"
	}
	authMode := os.Getenv("AUTH_MODE")
	if authMode != "strict" {
		authMode = "mock"
	}

	latency := parseDuration(os.Getenv("MOCK_LATENCY"), 0)
	transferDelay := parseDuration(os.Getenv("TRANSFER_DELAY"), 10*time.Second)

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		LogFile:       logFile,
		AuthMode:      authMode,
		MockLatency:   latency,
		TransferDelay: transferDelay,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s AUTH_MODE=%s MOCK_LATENCY=%s TRANSFER_DELAY=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AuthMode, cfg.MockLatency, cfg.TransferDelay)
	return cfg
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		log.Printf("[config] bad duration %q, using %s", s, def)
		return def
	}
	return d
}
