package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for souqtech-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables; environment variables always override YAML values. Secrets
// (API keys, database URL) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"3000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// StaticDir is the directory holding the front-end SPA build.
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR" env-default:"public"`

	Anthropic AnthropicConfig `yaml:"anthropic"`
	Serper    SerperConfig    `yaml:"serper"`
	Amazon    AmazonConfig    `yaml:"amazon"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
}

// AnthropicConfig holds the LLM provider settings.
type AnthropicConfig struct {
	APIKey      string  `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
	Model       string  `yaml:"model" env:"ANTHROPIC_MODEL" env-default:"claude-3-haiku-20240307"`
	MaxTokens   int     `yaml:"max_tokens" env:"ANTHROPIC_MAX_TOKENS" env-default:"2048"`
	Temperature float32 `yaml:"temperature" env:"ANTHROPIC_TEMPERATURE" env-default:"0.9"`
}

// IsConfigured returns true if a provider key is present.
func (c *AnthropicConfig) IsConfigured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SerperConfig holds the image/web search API settings.
type SerperConfig struct {
	APIKey  string `yaml:"-" env:"SERPER_API_KEY"` // Secret - not in YAML
	BaseURL string `yaml:"base_url" env:"SERPER_BASE_URL" env-default:"https://google.serper.dev"`
}

// IsConfigured returns true if a search key is present.
func (c *SerperConfig) IsConfigured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// AmazonConfig holds Product Advertising API credentials and the affiliate
// identity. PartnerTag is embedded in every outbound marketplace URL.
type AmazonConfig struct {
	AccessKey   string `yaml:"-" env:"AMAZON_ACCESS_KEY"` // Secret - not in YAML
	SecretKey   string `yaml:"-" env:"AMAZON_SECRET_KEY"` // Secret - not in YAML
	PartnerTag  string `yaml:"partner_tag" env:"AMAZON_PARTNER_TAG" env-default:"mobily00-21"`
	Host        string `yaml:"host" env:"AMAZON_HOST" env-default:"webservices.amazon.sa"`
	Region      string `yaml:"region" env:"AMAZON_REGION" env-default:"eu-west-1"`
	Marketplace string `yaml:"marketplace" env:"AMAZON_MARKETPLACE" env-default:"www.amazon.sa"`
}

// IsConfigured returns true when live PA-API calls are possible. The static
// affiliate search link needs only the partner tag and always works.
func (c *AmazonConfig) IsConfigured() bool {
	return strings.TrimSpace(c.AccessKey) != "" && strings.TrimSpace(c.SecretKey) != ""
}

// DatabaseConfig holds PostgreSQL connection configuration. An empty URL
// soft-disables persistence and analytics.
type DatabaseConfig struct {
	URL            string `yaml:"-" env:"DATABASE_URL"` // Secret - not in YAML
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// IsConfigured returns true if a database URL is present.
func (c *DatabaseConfig) IsConfigured() bool {
	return strings.TrimSpace(c.URL) != ""
}

// CacheConfig controls affiliate product snapshot staleness.
type CacheConfig struct {
	TTLHours int `yaml:"ttl_hours" env:"AFFILIATE_CACHE_TTL_HOURS" env-default:"24"`
}

// Load reads configuration from config.yaml (if present) with environment
// variable overrides. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	err := cleanenv.ReadConfig("config.yaml", cfg)
	if err != nil {
		// No YAML file is fine; env vars carry everything.
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("port must not be empty")
	}

	return cfg, nil
}
