package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string
	Port        int
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RunMigrations  bool   `toml:"run_migrations"`
	MigrationsPath string `toml:"migrations_path"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// auth
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AuthSessionTTL              Duration `toml:"auth_session_ttl"`
	// history cache
	HistoryCacheSizeMB int      `toml:"history_cache_size_mb"`
	HistoryCacheTTL    Duration `toml:"history_cache_ttl"`
	// catalog
	CatalogRefreshInterval Duration `toml:"catalog_refresh_interval"`
	// mcp
	MCPEnabled bool `toml:"mcp_enabled"`
}

// Duration decodes TOML strings like "15m" or "168h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, configPath string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(configPath, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", configPath, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s not found in %s", env, configPath)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.AuthSessionTTL.Duration <= 0 {
		c.AuthSessionTTL.Duration = 8 * time.Hour
	}
	if c.HistoryCacheSizeMB <= 0 {
		c.HistoryCacheSizeMB = 16
	}
	if c.HistoryCacheTTL.Duration <= 0 {
		c.HistoryCacheTTL.Duration = 10 * time.Minute
	}
	if c.CatalogRefreshInterval.Duration <= 0 {
		c.CatalogRefreshInterval.Duration = 5 * time.Minute
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = "./migrations"
	}
}
