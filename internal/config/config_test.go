// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("expected driver sqlite3, got %s", cfg.Database.Driver)
	}
	if cfg.Defaults.PostType != "post" {
		t.Errorf("expected post type post, got %s", cfg.Defaults.PostType)
	}
	if cfg.Defaults.Amount != 500 {
		t.Errorf("expected amount 500, got %d", cfg.Defaults.Amount)
	}
	if cfg.Defaults.FetchLimit != 1 {
		t.Errorf("expected fetch limit 1, got %d", cfg.Defaults.FetchLimit)
	}
}

func TestConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("THUMBFIX_HOME", tmpDir)
	defer os.Unsetenv("THUMBFIX_HOME")

	dir := Dir()
	if dir != tmpDir {
		t.Errorf("expected %s, got %s", tmpDir, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("THUMBFIX_HOME", tmpDir)
	defer os.Unsetenv("THUMBFIX_HOME")

	cfg := Default()
	cfg.Defaults.Amount = 25
	cfg.Defaults.FetchLimit = 5

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Defaults.Amount != 25 {
		t.Errorf("expected amount 25, got %d", loaded.Defaults.Amount)
	}
	if loaded.Defaults.FetchLimit != 5 {
		t.Errorf("expected fetch limit 5, got %d", loaded.Defaults.FetchLimit)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("THUMBFIX_HOME", tmpDir)
	os.Setenv("THUMBFIX_DB_DRIVER", "mysql")
	os.Setenv("THUMBFIX_DB_DSN", "user:pass@tcp(localhost:3306)/cms")
	defer func() {
		os.Unsetenv("THUMBFIX_HOME")
		os.Unsetenv("THUMBFIX_DB_DRIVER")
		os.Unsetenv("THUMBFIX_DB_DSN")
	}()

	if err := Save(Default()); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Database.Driver != "mysql" {
		t.Errorf("expected env driver mysql, got %s", loaded.Database.Driver)
	}
	if loaded.Database.DSN != "user:pass@tcp(localhost:3306)/cms" {
		t.Errorf("unexpected DSN: %s", loaded.Database.DSN)
	}
}

func TestDatabaseDSNDefaultsSQLitePath(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("THUMBFIX_HOME", tmpDir)
	defer os.Unsetenv("THUMBFIX_HOME")

	driver, dsn := Default().DatabaseDSN()
	if driver != "sqlite3" {
		t.Errorf("expected driver sqlite3, got %s", driver)
	}
	if dsn != filepath.Join(tmpDir, "thumbfix.db") {
		t.Errorf("unexpected dsn: %s", dsn)
	}
}
