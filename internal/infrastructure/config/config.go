package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Directory     DirectoryConfig     `mapstructure:"directory"`
	Submission    SubmissionConfig    `mapstructure:"submission"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	InstanceID    string              `mapstructure:"instance_id"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type DirectoryConfig struct {
	// Mode selects the catalog source: "file" or "http".
	Mode              string        `mapstructure:"mode"`
	AccountsPath      string        `mapstructure:"accounts_path"`
	BeneficiariesPath string        `mapstructure:"beneficiaries_path"`
	AccountsURL       string        `mapstructure:"accounts_url"`
	BeneficiariesURL  string        `mapstructure:"beneficiaries_url"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	RetryAttempts     uint          `mapstructure:"retry_attempts"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	// SessionUserID stands in for the session service that owns
	// authentication; catalogs are filtered to this user.
	SessionUserID string `mapstructure:"session_user_id"`
}

type SubmissionConfig struct {
	LedgerName              string        `mapstructure:"ledger_name"`
	Latency                 time.Duration `mapstructure:"latency"`
	FailureRate             float64       `mapstructure:"failure_rate"`
	TimeoutRate             float64       `mapstructure:"timeout_rate"`
	CircuitBreakerRequests uint32        `mapstructure:"circuit_breaker_requests"`
	CircuitBreakerRatio    float64       `mapstructure:"circuit_breaker_ratio"`
	CircuitBreakerInterval time.Duration `mapstructure:"circuit_breaker_interval"`
	CircuitBreakerTimeout  time.Duration `mapstructure:"circuit_breaker_timeout"`
}

type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	EnableMetrics  bool   `mapstructure:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing"`
}

func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("TRANSFERS")
	v.AutomaticEnv()

	// Read from config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/transfers")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive"))
	}

	switch c.Directory.Mode {
	case "file":
		if c.Directory.AccountsPath == "" || c.Directory.BeneficiariesPath == "" {
			errs = append(errs, fmt.Errorf("directory.accounts_path and directory.beneficiaries_path are required in file mode"))
		}
	case "http":
		if c.Directory.AccountsURL == "" || c.Directory.BeneficiariesURL == "" {
			errs = append(errs, fmt.Errorf("directory.accounts_url and directory.beneficiaries_url are required in http mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("directory.mode must be \"file\" or \"http\", got %q", c.Directory.Mode))
	}
	if c.Directory.SessionUserID == "" {
		errs = append(errs, fmt.Errorf("directory.session_user_id is required"))
	}
	if c.Directory.RetryAttempts == 0 {
		errs = append(errs, fmt.Errorf("directory.retry_attempts must be positive"))
	}

	if c.Submission.Latency < 0 {
		errs = append(errs, fmt.Errorf("submission.latency cannot be negative"))
	}
	if c.Submission.FailureRate < 0 || c.Submission.FailureRate > 1 {
		errs = append(errs, fmt.Errorf("submission.failure_rate must be between 0 and 1"))
	}
	if c.Submission.TimeoutRate < 0 || c.Submission.TimeoutRate > 1 {
		errs = append(errs, fmt.Errorf("submission.timeout_rate must be between 0 and 1"))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allow_credentials", false)

	// Directory defaults
	v.SetDefault("directory.mode", "file")
	v.SetDefault("directory.accounts_path", "./mock_data/accounts.json")
	v.SetDefault("directory.beneficiaries_path", "./mock_data/beneficiaries.json")
	v.SetDefault("directory.fetch_timeout", "10s")
	v.SetDefault("directory.retry_attempts", 3)
	v.SetDefault("directory.retry_delay", "200ms")
	v.SetDefault("directory.session_user_id", "user_001")

	// Submission defaults
	v.SetDefault("submission.ledger_name", "core-ledger")
	v.SetDefault("submission.latency", "1500ms")
	v.SetDefault("submission.failure_rate", 0.0)
	v.SetDefault("submission.timeout_rate", 0.0)
	v.SetDefault("submission.circuit_breaker_requests", 10)
	v.SetDefault("submission.circuit_breaker_ratio", 0.6)
	v.SetDefault("submission.circuit_breaker_interval", "60s")
	v.SetDefault("submission.circuit_breaker_timeout", "30s")

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", false)

	// Instance ID
	v.SetDefault("instance_id", "transfers-1")
}
