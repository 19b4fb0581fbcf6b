package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/dashseed/internal/database"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultProvider   = "sqlite"
	DefaultURLEnv     = "DATABASE_URL"
	DefaultSQLiteURL  = "sqlite://./db.sqlite"
	DefaultBcryptCost = 10
)

type Config struct {
	Database   Database `json:"database" mapstructure:"database"`
	DataPath   string   `json:"data_path" mapstructure:"data_path"` // empty means the embedded dataset
	BcryptCost int      `json:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	URL      string `json:"url" mapstructure:"url"` // used when URLEnv is unset

	explicitURL string
}

// BindEnvironment registers every key with viper so that DASHSEED_* variables
// (for example DASHSEED_DATABASE_PROVIDER) override the config file.
func BindEnvironment() {
	viper.SetDefault("database.provider", DefaultProvider)
	viper.SetDefault("database.url_env", DefaultURLEnv)
	viper.SetDefault("database.url", "")
	viper.SetDefault("data_path", "")
	viper.SetDefault("bcrypt_cost", DefaultBcryptCost)

	viper.SetEnvPrefix("DASHSEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Provider == "" {
		cfg.Database.Provider = DefaultProvider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = DefaultURLEnv
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}

	return &cfg, nil
}

// SetURL pins the database URL, taking precedence over url_env and url.
func (c *Config) SetURL(url string) {
	c.Database.explicitURL = url
}

// GetDatabaseURL prefers a URL set with SetURL, then the environment variable
// named by url_env, then the configured url. SQLite falls back to ./db.sqlite.
func (c *Config) GetDatabaseURL() (string, error) {
	if c.Database.explicitURL != "" {
		return c.Database.explicitURL, nil
	}
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}
	if c.Database.URL != "" {
		return c.Database.URL, nil
	}
	if provider, err := database.NormalizeProvider(c.Database.Provider); err == nil && provider == "sqlite" {
		return DefaultSQLiteURL, nil
	}
	return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
}

func (c *Config) Validate() error {
	if _, err := database.NormalizeProvider(c.Database.Provider); err != nil {
		return err
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}

	if c.DataPath != "" {
		if _, err := os.Stat(c.DataPath); err != nil {
			return fmt.Errorf("data_path %s: %w", c.DataPath, err)
		}
	}

	return nil
}
