package config

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("CLAIMDESK_TEST_STR", "set")

	if got := envString("CLAIMDESK_TEST_STR", "default"); got != "set" {
		t.Fatalf("expected env value, got %q", got)
	}
	if got := envString("CLAIMDESK_TEST_MISSING", "default"); got != "default" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("CLAIMDESK_TEST_INT", "42")
	if got := envInt("CLAIMDESK_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	t.Setenv("CLAIMDESK_TEST_INT", "not a number")
	if got := envInt("CLAIMDESK_TEST_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7 on invalid value, got %d", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("CLAIMDESK_TEST_DUR", "90s")
	if got := envDuration("CLAIMDESK_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}

	t.Setenv("CLAIMDESK_TEST_DUR", "ninety seconds")
	if got := envDuration("CLAIMDESK_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback 1m on invalid value, got %v", got)
	}
}

func TestEnvModes(t *testing.T) {
	dev := &Config{AppEnv: "development"}
	if !dev.IsDevelopment() || dev.IsProduction() {
		t.Fatal("development mode misreported")
	}

	prod := &Config{AppEnv: "production"}
	if !prod.IsProduction() || prod.IsDevelopment() {
		t.Fatal("production mode misreported")
	}
}
