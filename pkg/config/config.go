package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "storefront"

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

type APIConfig struct {
	BaseURL        string        `envconfig:"STOREFRONT_API_BASE_URL" default:"https://ecommerce.routemisr.com/api/v1"`
	RequestTimeout time.Duration `envconfig:"STOREFRONT_API_REQUEST_TIMEOUT" default:"15s"`
	RetryAttempts  int           `envconfig:"STOREFRONT_API_RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"STOREFRONT_API_RETRY_BASE_DELAY" default:"250ms"`
}

func (a APIConfig) validate() error {
	if strings.TrimSpace(a.BaseURL) == "" {
		return fmt.Errorf("%s_API_BASE_URL is required", strings.ToUpper(EnvPrefix))
	}
	if a.RequestTimeout <= 0 {
		return fmt.Errorf("api request timeout must be positive")
	}
	if a.RetryAttempts < 1 {
		return fmt.Errorf("api retry attempts must be at least 1")
	}
	return nil
}

type SessionConfig struct {
	// StoragePath points at the sqlite file holding the persisted session.
	// An empty path keeps the session in memory only.
	StoragePath string `envconfig:"STOREFRONT_SESSION_STORAGE_PATH" default:"storefront-session.db"`
}

type CatalogConfig struct {
	// ProductFreshness of zero means product listings are always refetched.
	// A negative freshness means entries never go stale for the session.
	ProductFreshness  time.Duration `envconfig:"STOREFRONT_CATALOG_PRODUCT_FRESHNESS" default:"0s"`
	TaxonomyFreshness time.Duration `envconfig:"STOREFRONT_CATALOG_TAXONOMY_FRESHNESS" default:"-1s"`
	IdleEviction      time.Duration `envconfig:"STOREFRONT_CATALOG_IDLE_EVICTION" default:"5m"`
}
