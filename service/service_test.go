package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cpusched/domain"

	"go.uber.org/zap/zaptest"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DEFAULT_QUANTUM", "")
	os.Unsetenv("DEFAULT_QUANTUM")

	cfg, err := NewService(filepath.Join(t.TempDir(), "missing.env")).LoadConfig(zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to load config : %v", err)
	}
	if cfg.DefaultQuantum != 2 || cfg.ListenAddr != ":8080" || cfg.CacheTTLSeconds != 300 || cfg.DbPort != 5432 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	t.Setenv("DEFAULT_QUANTUM", "")
	t.Setenv("ENABLE_POSTGRES", "")
	os.Unsetenv("DEFAULT_QUANTUM")
	os.Unsetenv("ENABLE_POSTGRES")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("DEFAULT_QUANTUM=4\nENABLE_POSTGRES=true\n"), 0o600); err != nil {
		t.Fatalf("could not write env file : %v", err)
	}
	cfg, err := NewService(envFile).LoadConfig(zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to load config : %v", err)
	}
	if cfg.DefaultQuantum != 4 || !cfg.EnablePostgres {
		t.Fatalf("env file values not applied %+v", cfg)
	}
}

func TestLoadConfigInvalidQuantum(t *testing.T) {
	t.Setenv("DEFAULT_QUANTUM", "0")

	_, err := NewService("").LoadConfig(zaptest.NewLogger(t))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
