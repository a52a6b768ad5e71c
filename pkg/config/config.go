// Package config provides configuration management for the ledger.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Ledger   LedgerConfig
	Debug    bool
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Port string
}

// DatabaseConfig represents storage configuration.
type DatabaseConfig struct {
	Driver string // sqlite3 or pgx
	Path   string // SQLite file path
	URL    string // PostgreSQL connection URL
}

// LedgerConfig represents file locations and presentation settings.
type LedgerConfig struct {
	DataDir     string
	LegacyFile  string
	ExportDir   string
	MappingFile string
	Currency    string // overrides the mapping file's currency when set
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "5000"),
		},
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("LEDGER_DB_DRIVER", "sqlite3"),
			Path:   os.Getenv("LEDGER_DB_PATH"),
			URL:    os.Getenv("DATABASE_URL"),
		},
		Ledger: LedgerConfig{
			DataDir:     getEnvOrDefault("LEDGER_DATA_DIR", "."),
			LegacyFile:  os.Getenv("LEDGER_LEGACY_FILE"),
			ExportDir:   os.Getenv("LEDGER_EXPORT_DIR"),
			MappingFile: os.Getenv("LEDGER_MAPPING_FILE"),
			Currency:    os.Getenv("LEDGER_CURRENCY"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// UsesPostgres reports whether the configured driver is PostgreSQL.
func (c *Config) UsesPostgres() bool {
	switch c.Database.Driver {
	case "pgx", "postgres", "postgresql":
		return true
	}
	return false
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "server":
			switch path[1] {
			case "port":
				value = c.Server.Port
			}
		case "database":
			switch path[1] {
			case "driver":
				value = c.Database.Driver
			case "url":
				value = c.Database.URL
			}
		case "ledger":
			switch path[1] {
			case "dataDir":
				value = c.Ledger.DataDir
			case "currency":
				value = c.Ledger.Currency
			case "mappingFile":
				value = c.Ledger.MappingFile
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// ValidateDatabase checks the settings needed to open the configured database.
func (c *Config) ValidateDatabase() error {
	if c.UsesPostgres() {
		return c.Validate([]string{"database", "url"})
	}
	return c.Validate([]string{"database", "driver"}, []string{"ledger", "dataDir"})
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
