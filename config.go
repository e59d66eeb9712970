package portfolio

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// SiteConfig holds all configuration for a portfolio site. Fields are read
// from PORTFOLIO_* environment variables by ConfigFromEnv; zero values left
// by programmatic callers are filled by setDefaults. Non-positive durations
// and limits count as unset.
type SiteConfig struct {
	Name        string `env:"PORTFOLIO_NAME"`        // Site name (default "Portfolio")
	URL         string `env:"PORTFOLIO_URL"`         // Canonical URL (default "http://localhost:3000")
	Description string `env:"PORTFOLIO_DESCRIPTION"` // Meta description

	Addr         string `env:"PORTFOLIO_ADDR"`          // Listen address (default ":3000")
	DatabasePath string `env:"PORTFOLIO_DATABASE_PATH"` // SQLite path (default "data/portfolio.db")
	StaticDir    string `env:"PORTFOLIO_STATIC_DIR"`    // User static assets (default "public")

	SessionSecret string `env:"PORTFOLIO_SESSION_SECRET"` // Required: session encryption secret
	CookieSecure  bool   `env:"PORTFOLIO_COOKIE_SECURE"`  // Set true for HTTPS

	CacheTTL      time.Duration `env:"PORTFOLIO_CACHE_TTL"`      // Catalog cache TTL (default 5m)
	ContactLimit  int           `env:"PORTFOLIO_CONTACT_LIMIT"`  // Messages per IP per window (default 5)
	ContactWindow time.Duration `env:"PORTFOLIO_CONTACT_WINDOW"` // Contact limiter window (default 10m)
}

// ConfigFromEnv parses SiteConfig from the environment and applies defaults.
func ConfigFromEnv() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.ContactLimit <= 0 {
		c.ContactLimit = 5
	}
	if c.ContactWindow <= 0 {
		c.ContactWindow = 10 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContactSink replaces the default sink that only logs contact messages.
func WithContactSink(s ContactSink) Option {
	return func(a *App) {
		a.contactSink = s
	}
}

// WithViews overrides the default templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
