// Package pathutil provides centralized path management for ledger files and directories.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default file names inside the data directory.
const (
	DefaultDatabaseFile = "financas.db"
	DefaultLegacyFile   = "financas.json"
	DefaultExportDir    = "beancount"
)

// PathResolver manages paths for the database, legacy imports and Beancount exports.
type PathResolver struct {
	dataDir      string
	databasePath string
	legacyFile   string
	exportDir    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataDir is the directory holding the ledger's files (e.g., ~/financas)
	DataDir string
	// DatabasePath is the path to the SQLite database file
	DatabasePath string
	// LegacyFile is the JSON export read by the one-shot importer
	LegacyFile string
	// ExportDir is the root directory for Beancount exports
	ExportDir string
}

// New creates a new PathResolver with the given configuration.
// Empty paths default to files inside DataDir:
// {DataDir}/financas.db, {DataDir}/financas.json and {DataDir}/beancount.
func New(config Config) *PathResolver {
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	return &PathResolver{
		dataDir:      dataDir,
		databasePath: orDefault(config.DatabasePath, filepath.Join(dataDir, DefaultDatabaseFile)),
		legacyFile:   orDefault(config.LegacyFile, filepath.Join(dataDir, DefaultLegacyFile)),
		exportDir:    orDefault(config.ExportDir, filepath.Join(dataDir, DefaultExportDir)),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// GetDataDir returns the data directory.
func (p *PathResolver) GetDataDir() string {
	return p.dataDir
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetLegacyFile returns the legacy JSON export path.
func (p *PathResolver) GetLegacyFile() string {
	return p.legacyFile
}

// GetExportDir returns the Beancount export directory.
func (p *PathResolver) GetExportDir() string {
	return p.exportDir
}

// GetYearDir returns the export directory for a year.
// Example: ./beancount/2024
func (p *PathResolver) GetYearDir(year string) string {
	return filepath.Join(p.exportDir, year)
}

// GetMonthFilePath returns the export file path for a month.
// yearMonth should be in YYYY-MM format.
// Example: ./beancount/2024/2024-01.beancount
func (p *PathResolver) GetMonthFilePath(yearMonth string) (string, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}

	year := parts[0]
	filename := fmt.Sprintf("%s.beancount", yearMonth)

	return filepath.Join(p.GetYearDir(year), filename), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
