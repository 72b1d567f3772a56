package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Connection pool limits. The pool is the only shared resource, so
	// these bound how many store connections concurrent requests can hold.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	// RequestTimeout bounds a whole request, including waiting for a pool
	// connection. Requests past the deadline fail with 503 instead of
	// blocking indefinitely.
	RequestTimeout time.Duration
}

// ParseFlags validates flags, falling back to environment variables.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; real env vars win over file values.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("boardify", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Pool tuning (prefer env, but allow CLI for dev)
	fs.IntVar(&cfg.MaxOpenConns, "max-conns", 0, "Max open database connections")
	fs.IntVar(&cfg.MaxIdleConns, "idle-conns", 0, "Max idle database connections")
	fs.DurationVar(&cfg.ConnMaxIdleTime, "conn-idle-timeout", 0, "Idle connection timeout")
	fs.DurationVar(&cfg.ConnMaxLifetime, "conn-lifetime", 0, "Max connection lifetime")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", 0, "Per-request deadline")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = intFromEnv("DB_MAX_OPEN_CONNS", 10)
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = intFromEnv("DB_MAX_IDLE_CONNS", 5)
	}
	if cfg.ConnMaxIdleTime == 0 {
		cfg.ConnMaxIdleTime = durationFromEnv("DB_CONN_IDLE_TIMEOUT", 30*time.Second)
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = durationFromEnv("DB_CONN_LIFETIME", time.Hour)
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = durationFromEnv("REQUEST_TIMEOUT", 10*time.Second)
	}

	return cfg, nil
}

func intFromEnv(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func durationFromEnv(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return def
}
