package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB int64         `mapstructure:"MAX_UPLOAD_MB"`

	TicketsAPIURL  string `mapstructure:"TICKETS_API_URL"`
	PaymentsAPIURL string `mapstructure:"PAYMENTS_API_URL"`
	ActionsAPIURL  string `mapstructure:"ACTIONS_API_URL"`
	ActionsTarget  string `mapstructure:"ACTIONS_TARGET"`
	ImagesAPIURL   string `mapstructure:"IMAGES_API_URL"`
	PublicAPIURL   string `mapstructure:"PUBLIC_API_URL"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`
	TemplatesFile  string `mapstructure:"TEMPLATES_FILE"`

	ActionClaimTTL time.Duration `mapstructure:"ACTION_CLAIM_TTL"`

	SupportName   string `mapstructure:"SUPPORT_NAME"`
	SupportEmail  string `mapstructure:"SUPPORT_EMAIL"`
	SupportDomain string `mapstructure:"SUPPORT_DOMAIN"`
}

var ErrMissingTicketsAPI = errors.New("TICKETS_API_URL is required")

// Load reads .env (if present) and the process environment. Keys set in the
// environment win over .env.
func Load() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("TICKETS_API_URL", "")
	v.SetDefault("PAYMENTS_API_URL", "")
	v.SetDefault("ACTIONS_API_URL", "")
	v.SetDefault("ACTIONS_TARGET", "process")
	v.SetDefault("IMAGES_API_URL", "http://localhost:8000/api")
	v.SetDefault("PUBLIC_API_URL", "http://localhost:8000/api")
	v.SetDefault("FRONTEND_URL", "http://localhost:8080")
	v.SetDefault("TEMPLATES_FILE", "")
	v.SetDefault("ACTION_CLAIM_TTL", "5m")
	v.SetDefault("SUPPORT_NAME", "Support")
	v.SetDefault("SUPPORT_EMAIL", "support@example.zendesk.com")
	v.SetDefault("SUPPORT_DOMAIN", "zendesk.com")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.TicketsAPIURL = strings.TrimRight(strings.TrimSpace(c.TicketsAPIURL), "/")
	if c.TicketsAPIURL == "" {
		return ErrMissingTicketsAPI
	}
	if c.PaymentsAPIURL == "" {
		c.PaymentsAPIURL = c.TicketsAPIURL
	}
	if c.ActionsAPIURL == "" {
		c.ActionsAPIURL = c.TicketsAPIURL
	}
	c.ActionsTarget = strings.ToLower(strings.TrimSpace(c.ActionsTarget))
	if c.ActionsTarget != "process" && c.ActionsTarget != "webhook" {
		return fmt.Errorf("ACTIONS_TARGET must be process or webhook, got %q", c.ActionsTarget)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	// a claim must outlive the outbound call that holds it
	if c.ActionClaimTTL <= c.RequestTimeout {
		return fmt.Errorf("ACTION_CLAIM_TTL (%s) must exceed REQUEST_TIMEOUT (%s)", c.ActionClaimTTL, c.RequestTimeout)
	}
	return nil
}
