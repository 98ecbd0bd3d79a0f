package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server
	Port            int           `env:"PORT" envDefault:"8080"`
	APIKey          string        `env:"API_KEY"` // API key for authentication
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`

	// Logging
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"mobmoney"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`

	// Reward pipeline
	ConfigDir       string `env:"CONFIG_DIR" envDefault:"configs"`
	MetricsDir      string `env:"METRICS_DIR" envDefault:"metrics"`
	DeadLetterPath  string `env:"DEAD_LETTER_PATH" envDefault:"logs/deadletter.jsonl"`
	Locale          string `env:"LOCALE" envDefault:"en"`
	SchedulerMode   string `env:"SCHEDULER_MODE" envDefault:"auto"`
	RegionCount     int    `env:"REGION_COUNT" envDefault:"4"`
	WorkerCount     int    `env:"WORKER_COUNT" envDefault:"4"`
	WorkerQueueSize int    `env:"WORKER_QUEUE_SIZE" envDefault:"1024"`

	// Ledger
	Ledger      string        `env:"LEDGER" envDefault:"memory"`
	DatabaseURL string        `env:"DATABASE_URL"`
	DBUser      string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost      string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string        `env:"DB_PORT" envDefault:"5432"`
	DBName      string        `env:"DB_NAME" envDefault:"mobmoney"`
	DBMaxConns  int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxIdle   time.Duration `env:"DB_MAX_IDLE" envDefault:"1m"`
	DBMaxLife   time.Duration `env:"DB_MAX_LIFE" envDefault:"5m"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.Port < 1 || c.Port > MaxPort {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if !slices.Contains(LogFormats, c.LogFormat) {
		return fmt.Errorf("invalid LOG_FORMAT value: %q", c.LogFormat)
	}
	if !slices.Contains(SchedulerModes, c.SchedulerMode) {
		return fmt.Errorf("invalid SCHEDULER_MODE value: %q", c.SchedulerMode)
	}
	if !slices.Contains(LedgerBackends, c.Ledger) {
		return fmt.Errorf("invalid LEDGER value: %q", c.Ledger)
	}
	if c.RegionCount < 1 || c.WorkerCount < 1 || c.WorkerQueueSize < 1 {
		return fmt.Errorf("REGION_COUNT, WORKER_COUNT and WORKER_QUEUE_SIZE must be positive")
	}
	return nil
}

// UsePostgres reports whether the Postgres ledger is selected
func (c *Config) UsePostgres() bool {
	return c.Ledger == LedgerPostgres
}

// GetDBConnString returns the PostgreSQL connection string, preferring DATABASE_URL if set
func (c *Config) GetDBConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
