package config

import (
	"errors"
	"flag"
	"fmt"
	"net/mail"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"` // development, production

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // text, json

	// Postmark
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	MailerDriver         string `env:"MAILER_DRIVER" envDefault:"postmark"` // postmark, log

	// Voucher delivery
	FromEmail   string        `env:"VOUCHER_FROM_EMAIL" envDefault:"no-reply@letsgomakka.com"`
	SendTimeout time.Duration `env:"VOUCHER_SEND_TIMEOUT" envDefault:"15s"`
	MaxBodyMB   int           `env:"MAX_BODY_MB" envDefault:"15"`

	// Limits
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"10"`

	SiteConfigPath string `env:"SITE_CONFIG_PATH"`
}

// Load reads an optional .env file, parses the environment and applies
// command-line overrides from args.
func Load(args []string) (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "Server port")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development, production)")
	fs.StringVar(&cfg.SiteConfigPath, "site-config", cfg.SiteConfigPath, "Path to the site configuration YAML file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}

	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("ENV must be development or production, got %q", c.Env)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	switch c.MailerDriver {
	case "postmark":
	case "log":
		if c.IsProduction() {
			return errors.New("MAILER_DRIVER=log is not allowed in production")
		}
	default:
		return fmt.Errorf("MAILER_DRIVER must be postmark or log, got %q", c.MailerDriver)
	}

	addr, err := mail.ParseAddress(c.FromEmail)
	if err != nil || addr.Name != "" {
		return fmt.Errorf("VOUCHER_FROM_EMAIL must be a plain email address, got %q", c.FromEmail)
	}

	if c.SendTimeout <= 0 {
		return errors.New("VOUCHER_SEND_TIMEOUT must be positive")
	}

	if c.MaxBodyMB <= 0 {
		return errors.New("MAX_BODY_MB must be positive")
	}

	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}

	// A missing POSTMARK_SERVER_TOKEN is not a startup error; sends fail
	// with a configuration error instead.
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MailerConfigured reports whether a sending credential is present.
func (c *Config) MailerConfigured() bool {
	return c.PostmarkServerToken != ""
}
