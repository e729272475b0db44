package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:               "8080",
		Env:                "development",
		LogFormat:          "text",
		MailerDriver:       "postmark",
		FromEmail:          "no-reply@letsgomakka.com",
		SendTimeout:        15 * time.Second,
		MaxBodyMB:          15,
		RateLimitPerMinute: 30,
		RateLimitBurst:     10,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTMARK_SERVER_TOKEN", "")
	t.Setenv("PORT", "8080")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.FromEmail != "no-reply@letsgomakka.com" {
		t.Errorf("unexpected from email %q", cfg.FromEmail)
	}
	if cfg.SendTimeout != 15*time.Second {
		t.Errorf("unexpected send timeout %v", cfg.SendTimeout)
	}
	if cfg.MailerConfigured() {
		t.Error("expected mailer to be unconfigured without a token")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("POSTMARK_SERVER_TOKEN", "server-token")

	cfg, err := Load([]string{"-port", "9100"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9100" {
		t.Errorf("expected flag to override PORT, got %q", cfg.Port)
	}
	if !cfg.MailerConfigured() {
		t.Error("expected mailer to be configured")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing token is allowed", func(c *Config) { c.PostmarkServerToken = "" }, false},
		{"bad port", func(c *Config) { c.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"unknown env", func(c *Config) { c.Env = "staging" }, true},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"invalid from address", func(c *Config) { c.FromEmail = "not-an-address" }, true},
		{"from address with display name", func(c *Config) { c.FromEmail = "Makkah <no-reply@letsgomakka.com>" }, true},
		{"zero timeout", func(c *Config) { c.SendTimeout = 0 }, true},
		{"zero body limit", func(c *Config) { c.MaxBodyMB = 0 }, true},
		{"zero rate limit", func(c *Config) { c.RateLimitPerMinute = 0 }, true},
		{"unknown mailer driver", func(c *Config) { c.MailerDriver = "smtp" }, true},
		{"log driver in development", func(c *Config) { c.MailerDriver = "log" }, false},
		{"log driver in production", func(c *Config) { c.MailerDriver = "log"; c.Env = "production" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
