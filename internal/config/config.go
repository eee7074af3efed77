package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string

	AuthSecret string
	TokenTTL   time.Duration

	CORSOrigins []string

	// Admin bootstrap: created at startup if no user with this email exists.
	AdminEmail    string
	AdminPassword string

	// Deadline hardening: reject submissions arriving after the session's
	// time budget plus SubmitGrace. Advisory (off) by default.
	EnforceDeadline bool
	SubmitGrace     time.Duration
}

func Default() Config {
	return Config{
		HTTPAddr:    ":8080",
		DBDriver:    "sqlite",
		DBDSN:       "",
		AuthSecret:  "quizmaster-dev-secret",
		TokenTTL:    8 * time.Hour,
		CORSOrigins: []string{"http://localhost:3000"},
		AdminEmail:  "admin@quizmaster.local",
		SubmitGrace: 30 * time.Second,
	}
}

// fileConfig mirrors Config for YAML, with durations as strings ("8h", "30s").
type fileConfig struct {
	HTTPAddr        string   `yaml:"http_addr"`
	DBDriver        string   `yaml:"db_driver"`
	DBDSN           string   `yaml:"db_dsn"`
	AuthSecret      string   `yaml:"auth_secret"`
	TokenTTL        string   `yaml:"token_ttl"`
	CORSOrigins     []string `yaml:"cors_origins"`
	AdminEmail      string   `yaml:"admin_email"`
	AdminPassword   string   `yaml:"admin_password"`
	EnforceDeadline *bool    `yaml:"enforce_deadline"`
	SubmitGrace     string   `yaml:"submit_grace"`
}

// Load builds the effective config: defaults, then the YAML file at path
// (skipped when path is empty or missing), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return cfg, err
			}
			cfg.applyFile(fc)
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(fc fileConfig) {
	if fc.HTTPAddr != "" {
		c.HTTPAddr = fc.HTTPAddr
	}
	if fc.DBDriver != "" {
		c.DBDriver = fc.DBDriver
	}
	if fc.DBDSN != "" {
		c.DBDSN = fc.DBDSN
	}
	if fc.AuthSecret != "" {
		c.AuthSecret = fc.AuthSecret
	}
	if d, err := time.ParseDuration(fc.TokenTTL); err == nil && fc.TokenTTL != "" {
		c.TokenTTL = d
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}
	if fc.AdminEmail != "" {
		c.AdminEmail = fc.AdminEmail
	}
	if fc.AdminPassword != "" {
		c.AdminPassword = fc.AdminPassword
	}
	if fc.EnforceDeadline != nil {
		c.EnforceDeadline = *fc.EnforceDeadline
	}
	if d, err := time.ParseDuration(fc.SubmitGrace); err == nil && fc.SubmitGrace != "" {
		c.SubmitGrace = d
	}
}

func (c *Config) applyEnv() {
	c.HTTPAddr = envOr("HTTP_ADDR", c.HTTPAddr)
	c.DBDriver = envOr("DB_DRIVER", c.DBDriver)
	c.DBDSN = envOr("DB_DSN", c.DBDSN)
	c.AuthSecret = envOr("AUTH_HMAC_SECRET", c.AuthSecret)
	c.TokenTTL = envDuration("TOKEN_TTL", c.TokenTTL)
	c.CORSOrigins = csvOr("CORS_ORIGINS", c.CORSOrigins)
	c.AdminEmail = envOr("ADMIN_EMAIL", c.AdminEmail)
	c.AdminPassword = envOr("ADMIN_PASSWORD", c.AdminPassword)
	c.EnforceDeadline = envBool("ENFORCE_DEADLINE", c.EnforceDeadline)
	c.SubmitGrace = envDuration("SUBMIT_GRACE", c.SubmitGrace)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
