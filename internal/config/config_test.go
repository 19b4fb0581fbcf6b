package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Database.Provider != "sqlite" {
		t.Errorf("Expected database provider to be 'sqlite', got '%s'", config.Database.Provider)
	}
	if config.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", config.Database.URLEnv)
	}
	if config.BcryptCost != 10 {
		t.Errorf("Expected bcrypt_cost to be 10, got %d", config.BcryptCost)
	}
	if config.DataPath != "" {
		t.Errorf("Expected empty data_path, got '%s'", config.DataPath)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	resetViper(t)
	t.Setenv("DASHSEED_DATABASE_PROVIDER", "postgresql")
	t.Setenv("DASHSEED_BCRYPT_COST", "12")
	BindEnvironment()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Database.Provider != "postgresql" {
		t.Errorf("Expected provider from environment, got '%s'", config.Database.Provider)
	}
	if config.BcryptCost != 12 {
		t.Errorf("Expected bcrypt_cost 12, got %d", config.BcryptCost)
	}
}

func TestLoadFromFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "dashseed.config.json")
	content := `{"database": {"provider": "mysql", "url": "user:pass@tcp(localhost:3306)/dash"}, "bcrypt_cost": 11}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Database.Provider != "mysql" || config.BcryptCost != 11 {
		t.Errorf("Unexpected config: %+v", config)
	}

	t.Setenv("DATABASE_URL", "")
	url, err := config.GetDatabaseURL()
	if err != nil || url != "user:pass@tcp(localhost:3306)/dash" {
		t.Errorf("Expected configured url, got '%s' (%v)", url, err)
	}
}

func TestGetDatabaseURL(t *testing.T) {
	t.Setenv("TEST_DB_URL", "")

	config := &Config{Database: Database{Provider: "sqlite", URLEnv: "TEST_DB_URL"}}
	if url, err := config.GetDatabaseURL(); err != nil || url != DefaultSQLiteURL {
		t.Errorf("Expected sqlite fallback, got '%s' (%v)", url, err)
	}

	config.Database.URL = "sqlite://./other.sqlite"
	if url, _ := config.GetDatabaseURL(); url != "sqlite://./other.sqlite" {
		t.Errorf("Expected configured url, got '%s'", url)
	}

	t.Setenv("TEST_DB_URL", "sqlite://./env.sqlite")
	if url, _ := config.GetDatabaseURL(); url != "sqlite://./env.sqlite" {
		t.Errorf("Expected environment url, got '%s'", url)
	}

	config.SetURL("sqlite://./flag.sqlite")
	if url, _ := config.GetDatabaseURL(); url != "sqlite://./flag.sqlite" {
		t.Errorf("Expected explicit url, got '%s'", url)
	}

	pg := &Config{Database: Database{Provider: "postgres", URLEnv: "MISSING_DB_URL"}}
	t.Setenv("MISSING_DB_URL", "")
	if _, err := pg.GetDatabaseURL(); err == nil {
		t.Error("Expected an error when no postgres url is configured")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{Database: Database{Provider: "mysql"}, BcryptCost: 10}, false},
		{"unknown provider", Config{Database: Database{Provider: "mongodb"}, BcryptCost: 10}, true},
		{"cost too low", Config{Database: Database{Provider: "sqlite"}, BcryptCost: 3}, true},
		{"cost too high", Config{Database: Database{Provider: "sqlite"}, BcryptCost: 32}, true},
		{"missing data file", Config{Database: Database{Provider: "sqlite"}, BcryptCost: 10, DataPath: "/nonexistent/data.yaml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
