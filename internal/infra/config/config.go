package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samdev/lexibase/pkg/fail"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
	Tokens   TokensConfig   `yaml:"tokens"`
	Google   GoogleConfig   `yaml:"google"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	// CookieSameSite is "lax" or "none"; cross-origin frontends need none.
	CookieSameSite string          `yaml:"cookieSameSite"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig throttles the credential endpoints per client IP.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// DatabaseConfig contains DSN and pooling settings.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// AuthConfig drives token issuance and session lifetime.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	Host            string        `yaml:"host"`
	SessionTTL      time.Duration `yaml:"sessionTtl"`
	VerificationTTL time.Duration `yaml:"verificationTtl"`
	ResetTTL        time.Duration `yaml:"resetTtl"`
}

// MailConfig holds the outbound sender credentials.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Sender   string `yaml:"sender"`
	Password string `yaml:"password"`
	// Dev suppresses delivery and logs mail instead; sender credentials
	// are not required in this mode.
	Dev bool `yaml:"dev"`
}

// TokensConfig selects the one-time token store backend. With an empty
// Addr the store falls back to Postgres.
type TokensConfig struct {
	Addr string `yaml:"addr"`
}

// GoogleConfig carries the optional third-party login credentials.
type GoogleConfig struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	RedirectURL  string `yaml:"redirectUrl"`
}

// Enabled reports whether the login flow can actually run; mounting the
// routes on a partial credential set would fail every call.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// Load reads configuration from a YAML file and environment variables.
// Missing required values fail startup instead of starting degraded.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("COOKIE_SAME_SITE"); v != "" {
		cfg.HTTP.CookieSameSite = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Database.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Auth.Host = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.SessionTTL = parsed
		}
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = parsed
		}
	}
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		cfg.Mail.Sender = v
	}
	if v := os.Getenv("EMAIL_SENDER_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("MAIL_DEV"); v != "" {
		cfg.Mail.Dev = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TOKEN_STORE_ADDR"); v != "" {
		cfg.Tokens.Addr = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.Google.ClientSecret = v
	}
	if v := os.Getenv("GOOGLE_REDIRECT_URL"); v != "" {
		cfg.Google.RedirectURL = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":3000",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			CookieSameSite: "none",
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		Database: DatabaseConfig{
			MaxConns: 4,
		},
		Auth: AuthConfig{
			SessionTTL:      time.Hour,
			VerificationTTL: 24 * time.Hour,
			ResetTTL:        time.Hour,
		},
		Mail: MailConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}
}

// SameSite resolves the configured cookie policy.
func (c HTTPConfig) SameSite() http.SameSite {
	if strings.EqualFold(c.CookieSameSite, "none") {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// Validate ensures the configuration is safe to use. Each missing
// required value reports the environment variable that supplies it.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fail.MissingEnvVar("DATABASE_URL")
	}
	if c.Auth.Secret == "" {
		return fail.MissingEnvVar("JWT_SECRET")
	}
	if c.Auth.Host == "" {
		return fail.MissingEnvVar("HOST")
	}
	if !c.Mail.Dev {
		if c.Mail.Sender == "" {
			return fail.MissingEnvVar("EMAIL_SENDER")
		}
		if c.Mail.Password == "" {
			return fail.MissingEnvVar("EMAIL_SENDER_PASSWORD")
		}
	}
	if c.HTTP.Address == "" {
		return fail.MissingEnvVar("HTTP_ADDRESS")
	}
	if c.Auth.SessionTTL <= 0 || c.Auth.VerificationTTL <= 0 || c.Auth.ResetTTL <= 0 {
		return fmt.Errorf("auth ttls must be positive")
	}
	if ss := c.HTTP.CookieSameSite; !strings.EqualFold(ss, "lax") && !strings.EqualFold(ss, "none") {
		return fmt.Errorf("http.cookieSameSite must be lax or none, got %q", ss)
	}
	return nil
}
