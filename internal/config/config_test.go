package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "data/portal.db", cfg.Database.Path)
	assert.Equal(t, 10*time.Second, cfg.Status.FetchTimeout)
	assert.Equal(t, "Flats", cfg.Report.SheetName)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /var/lib/portal/portal.db
status:
  fetch_timeout: 3s
  apartment_id: apt-7
report:
  sheet_name: Q1 Dues
logger:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/portal/portal.db", cfg.Database.Path)
	assert.Equal(t, 3*time.Second, cfg.Status.FetchTimeout)
	assert.Equal(t, "apt-7", cfg.Status.ApartmentID)
	assert.Equal(t, "Q1 Dues", cfg.Report.SheetName)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "status:\n  apartment_id: apt-1\n")
	t.Setenv("APARTMENT_ID", "apt-env")
	t.Setenv("PORTAL_STATUS_FETCH_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "apt-env", cfg.Status.ApartmentID)
	assert.Equal(t, 2*time.Second, cfg.Status.FetchTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PORTAL_DOTENV_PROBE=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PORTAL_DOTENV_PROBE") })

	require.NoError(t, loadDotEnv(envPath))
	assert.Equal(t, "from-file", os.Getenv("PORTAL_DOTENV_PROBE"))

	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080, Mode: "release"},
			Database: DatabaseConfig{Path: "portal.db", MigrationsDir: "migrations"},
			Status:   StatusConfig{FetchTimeout: time.Second},
			Report:   ReportConfig{SheetName: "Flats"},
			Logger:   LoggerConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad mode", mutate: func(c *Config) { c.Server.Mode = "prod" }, wantErr: true},
		{name: "no database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "zero fetch timeout", mutate: func(c *Config) { c.Status.FetchTimeout = 0 }, wantErr: true},
		{name: "summary sheet name", mutate: func(c *Config) { c.Report.SheetName = "summary" }, wantErr: true},
		{name: "long sheet name", mutate: func(c *Config) { c.Report.SheetName = "a very long sheet name over the limit" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logger.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToContainerConfig(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 9000, Mode: "debug"},
		Database: DatabaseConfig{Path: "x.db", MigrationsDir: "m"},
		Status:   StatusConfig{FetchTimeout: 4 * time.Second},
		Report:   ReportConfig{SheetName: "Dues", OutputDir: "out"},
	}

	cc := cfg.ToContainerConfig()
	assert.Equal(t, "x.db", cc.Database.Path)
	assert.Equal(t, "m", cc.Database.MigrationsDir)
	assert.Equal(t, 4*time.Second, cc.Status.FetchTimeout)
	assert.Equal(t, "Dues", cc.Report.SheetName)
	assert.Equal(t, 9000, cc.Server.Port)
	assert.Equal(t, "debug", cc.Server.Mode)
	assert.NoError(t, cc.Validate())
}
