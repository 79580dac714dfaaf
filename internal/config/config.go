package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	UI     UIConfig     `mapstructure:"ui"`
	Server ServerConfig `mapstructure:"server"`
}

// APIConfig holds the storefront API endpoints used by the shop.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	CDNURL  string        `mapstructure:"cdn_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Currency         string `mapstructure:"currency"`
	PriceUnavailable string `mapstructure:"price_unavailable"`
	LogFile          string `mapstructure:"log_file"`
}

// ServerConfig holds the reference API server settings.
type ServerConfig struct {
	Addr     string         `mapstructure:"addr"`
	Database DatabaseConfig `mapstructure:"database"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
}

// DatabaseConfig selects the SQL backend. Driver is sqlite3 or postgres.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// AMQPConfig enables order notifications when URL is set.
type AMQPConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

// Path returns the config file location. STOREFRONT_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("STOREFRONT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "storefront", "config.toml")
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "storefront")
}

// Load reads configuration from file and env. Env var overrides use prefix STOREFRONT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8080/api/weblarek")
	v.SetDefault("api.cdn_url", "http://localhost:8080/content/weblarek")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("ui.currency", "synapses")
	v.SetDefault("ui.price_unavailable", "Priceless")
	v.SetDefault("ui.log_file", "storefront.log")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.database.driver", "sqlite3")
	v.SetDefault("server.database.dsn", filepath.Join(dataDir(), "storefront.db"))
	v.SetDefault("server.amqp.url", "")
	v.SetDefault("server.amqp.queue", "orders")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if _, err := os.Stat(Path()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.cdn_url", cfg.API.CDNURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("ui.currency", cfg.UI.Currency)
	v.Set("ui.price_unavailable", cfg.UI.PriceUnavailable)
	v.Set("ui.log_file", cfg.UI.LogFile)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.database.driver", cfg.Server.Database.Driver)
	v.Set("server.database.dsn", cfg.Server.Database.DSN)
	v.Set("server.amqp.url", cfg.Server.AMQP.URL)
	v.Set("server.amqp.queue", cfg.Server.AMQP.Queue)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
