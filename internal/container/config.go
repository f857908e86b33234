// Package container provides dependency injection and lifecycle management
// for the dues portal following Clean Architecture principles.
package container

import (
	"fmt"
	"time"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Status classification configuration
	Status StatusConfig

	// Report export configuration
	Report ReportConfig

	// Server configuration
	Server ServerConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration

	// MigrationsDir is the path to migration files
	MigrationsDir string
}

// StatusConfig holds classification settings.
type StatusConfig struct {
	// FetchTimeout bounds reading the registry and ledger snapshot
	FetchTimeout time.Duration
}

// ReportConfig holds Excel export settings.
type ReportConfig struct {
	// SheetName is the name of the per-flat sheet
	SheetName string

	// OutputDir is where the report CLI writes workbooks
	OutputDir string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Mode         string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "data/portal.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			MigrationsDir:   "migrations",
		},
		Status: StatusConfig{
			FetchTimeout: 10 * time.Second,
		},
		Report: ReportConfig{
			SheetName: "Flats",
			OutputDir: "reports",
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			Mode:         "release",
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Status.FetchTimeout < 0 {
		return fmt.Errorf("status.fetch_timeout cannot be negative")
	}
	return nil
}
