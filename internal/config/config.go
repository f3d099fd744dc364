package config

import (
	"flag"
	"fmt"
	"time"

	pkgRetry "github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:"127.0.0.1:8000"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// AI project service configuration
	AIProjectCfg AIProjectConfig `envPrefix:"AI_PROJECT_"`

	// Credential provider configuration
	CredentialCfg CredentialConfig `envPrefix:"CREDENTIAL_"`

	// Agent provisioning defaults
	AgentCfg AgentConfig `envPrefix:"AGENT_"`

	// Telemetry configuration (optional collaborator)
	TelemetryCfg TelemetryConfig `envPrefix:"OTEL_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// AIProjectConfig holds the remote AI project service configuration
type AIProjectConfig struct {
	HTTPClientConfig
	Endpoint string               `env:"ENDPOINT,notEmpty"`
	Retry    pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// CredentialConfig holds credential provider configuration
type CredentialConfig struct {
	ClientID      string        `env:"CLIENT_ID"`
	TokenEndpoint string        `env:"TOKEN_ENDPOINT"`
	StaticToken   string        `env:"STATIC_TOKEN"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"50m"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// AgentConfig holds agent provisioning defaults.
// The dialect pair defaults to the accelerator's informix→tsql conversion
// but can be overridden per deployment.
type AgentConfig struct {
	SourceDialect   string        `env:"SQL_FROM" envDefault:"informix"`
	TargetDialect   string        `env:"SQL_TO" envDefault:"tsql"`
	ModelDeployment string        `env:"MODEL_DEPLOYMENT" envDefault:"gpt-4o"`
	SetupTimeout    time.Duration `env:"SETUP_TIMEOUT" envDefault:"2m"`
	CleanupTimeout  time.Duration `env:"CLEANUP_TIMEOUT" envDefault:"30s"`
}

// TelemetryConfig holds OpenTelemetry exporter settings
type TelemetryConfig struct {
	Enabled     bool    `env:"ENABLED" envDefault:"true"`
	Endpoint    string  `env:"EXPORTER_ENDPOINT" envDefault:"localhost:4319"`
	Insecure    bool    `env:"EXPORTER_INSECURE" envDefault:"true"`
	ServiceName string  `env:"SERVICE_NAME" envDefault:"code-gen-accelerator-backend"`
	SampleRate  float64 `env:"SAMPLE_RATE" envDefault:"1.0"`
}

// HTTPClientConfig holds outbound HTTP client settings
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`
	MaxFileCount  int   `env:"MAX_FILE_COUNT" envDefault:"64"`
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.CredentialCfg.TokenEndpoint == "" && cfg.CredentialCfg.StaticToken == "" && !cfg.EnableMocks {
		return fmt.Errorf("either CREDENTIAL_TOKEN_ENDPOINT or CREDENTIAL_STATIC_TOKEN must be set")
	}

	if cfg.AgentCfg.SourceDialect == cfg.AgentCfg.TargetDialect {
		return fmt.Errorf("AGENT_SQL_FROM and AGENT_SQL_TO must differ, both are %q", cfg.AgentCfg.SourceDialect)
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	if cfg.TelemetryCfg.SampleRate < 0 || cfg.TelemetryCfg.SampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0 and 1, got %f", cfg.TelemetryCfg.SampleRate)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
