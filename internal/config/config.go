package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Logger       LoggerConfig       `yaml:"logger"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	GitHub       GitHubConfig       `yaml:"github"`
	Realtime     RealtimeConfig     `yaml:"realtime"`
	Jobs         JobsConfig         `yaml:"jobs"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"base_path"`
	FrontendURL     string        `yaml:"frontend_url"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	SQLitePath      string        `yaml:"sqlite_path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GetDSN returns the connection string for the configured driver
func (d DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type VerificationConfig struct {
	SignupCodeTTL time.Duration `yaml:"signup_code_ttl"`
	ResendCodeTTL time.Duration `yaml:"resend_code_ttl"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
}

type SMTPConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	From     string        `yaml:"from"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled reports whether outbound mail is configured
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type GitHubConfig struct {
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	APIBaseURL   string        `yaml:"api_base_url"`
	OAuthURL     string        `yaml:"oauth_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

type RealtimeConfig struct {
	EnforceMembership bool `yaml:"enforce_membership"`
	SendBuffer        int  `yaml:"send_buffer"`
}

type JobsConfig struct {
	OrphanSweepSchedule     string `yaml:"orphan_sweep_schedule"`
	BusinessMetricsSchedule string `yaml:"business_metrics_schedule"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Mode:            "debug",
			BasePath:        "",
			FrontendURL:     "http://localhost:5173",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logger: LoggerConfig{Level: "info"},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "taskboard",
			Name:            "taskboard",
			SSLMode:         "disable",
			SQLitePath:      "taskboard.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		JWT: JWTConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		Verification: VerificationConfig{
			SignupCodeTTL: 24 * time.Hour,
			ResendCodeTTL: 10 * time.Minute,
			BcryptCost:    10,
		},
		SMTP: SMTPConfig{
			Port:    587,
			Timeout: 10 * time.Second,
		},
		GitHub: GitHubConfig{
			APIBaseURL: "https://api.github.com",
			OAuthURL:   "https://github.com/login/oauth/access_token",
			Timeout:    10 * time.Second,
		},
		Realtime: RealtimeConfig{
			EnforceMembership: true,
			SendBuffer:        256,
		},
		Jobs: JobsConfig{
			OrphanSweepSchedule:     "@every 10m",
			BusinessMetricsSchedule: "@every 1m",
		},
	}
}

// Load reads defaults, then the yaml file at path if present, then environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("SERVER_PORT", &cfg.Server.Port)
	setString("PORT", &cfg.Server.Port)
	setString("GIN_MODE", &cfg.Server.Mode)
	setString("SERVER_BASE_PATH", &cfg.Server.BasePath)
	setString("FRONTEND_URL", &cfg.Server.FrontendURL)
	setString("LOG_LEVEL", &cfg.Logger.Level)

	setString("DB_DRIVER", &cfg.Database.Driver)
	setString("DATABASE_URL", &cfg.Database.URL)
	setString("DB_HOST", &cfg.Database.Host)
	setInt("DB_PORT", &cfg.Database.Port)
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_NAME", &cfg.Database.Name)
	setString("DB_SSLMODE", &cfg.Database.SSLMode)
	setString("SQLITE_PATH", &cfg.Database.SQLitePath)

	setString("REDIS_URL", &cfg.Redis.URL)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)

	setString("JWT_SECRET", &cfg.JWT.Secret)
	setDuration("JWT_TOKEN_TTL", &cfg.JWT.TokenTTL)

	setString("SMTP_HOST", &cfg.SMTP.Host)
	setInt("SMTP_PORT", &cfg.SMTP.Port)
	setString("SMTP_USERNAME", &cfg.SMTP.Username)
	setString("SMTP_PASSWORD", &cfg.SMTP.Password)
	setString("SMTP_FROM", &cfg.SMTP.From)

	setString("GITHUB_CLIENT_ID", &cfg.GitHub.ClientID)
	setString("GITHUB_CLIENT_SECRET", &cfg.GitHub.ClientSecret)
	setString("GITHUB_API_BASE_URL", &cfg.GitHub.APIBaseURL)

	if v := os.Getenv("REALTIME_ENFORCE_MEMBERSHIP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Realtime.EnforceMembership = b
		}
	}
	setString("ORPHAN_SWEEP_SCHEDULE", &cfg.Jobs.OrphanSweepSchedule)
}

// Validate checks settings the process cannot run without
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Mode == "release" && c.JWT.Secret == "" {
		return errors.New("jwt secret must be set in release mode")
	}
	if c.JWT.TokenTTL <= 0 {
		return errors.New("jwt token ttl must be positive")
	}
	return nil
}
