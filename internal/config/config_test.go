package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/clinic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDev() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool conns = %d/%d, want 20/5", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.SlotMinutes != 30 {
		t.Errorf("SlotMinutes = %d, want 30", cfg.SlotMinutes)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Errorf("MigrationsDir = %q, want migrations", cfg.MigrationsDir)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Load must fail without DATABASE_URL")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/clinic")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SLOT_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.SlotMinutes != 15 {
		t.Errorf("SlotMinutes = %d, want 15", cfg.SlotMinutes)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DBMaxConns:     20,
		DBMinConns:     5,
		RateLimitRPS:   100,
		SlotMinutes:    30,
	}
	if err := base.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := base
	bad.SlotMinutes = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero SLOT_MINUTES must be rejected")
	}

	bad = base
	bad.DBMinConns = 50
	if err := bad.Validate(); err == nil {
		t.Error("min conns above max must be rejected")
	}

	bad = base
	bad.RateLimitRPS = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero rate limit must be rejected")
	}
}
