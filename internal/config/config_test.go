package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedBalanceMatchesDefault(t *testing.T) {
	var embedded Balance
	if err := yaml.Unmarshal(DefaultBalanceYAML(), &embedded); err != nil {
		t.Fatalf("embedded balance does not parse: %v", err)
	}
	if embedded != DefaultBalance() {
		t.Errorf("embedded balance differs from DefaultBalance():\n%+v\n%+v", embedded, DefaultBalance())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("embedded balance invalid: %v", err)
	}
}

func TestLoadBalanceCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balance.yaml")

	cfg := DefaultBalance()
	cfg.Offline.MaxMs = 1000
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadBalance(path)
	if err != nil {
		t.Fatalf("LoadBalance() failed: %v", err)
	}
	if got.Offline.MaxMs != 1000 {
		t.Errorf("offline.max_ms = %d, want 1000", got.Offline.MaxMs)
	}
}

func TestLoadBalanceMissingCustomPath(t *testing.T) {
	if _, err := LoadBalance(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for unreadable custom path")
	}
}

func TestLoadBalanceRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	if err := os.WriteFile(path, []byte("tick:\n  interval_ms: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBalance(path); err == nil {
		t.Error("expected validation error for zero tick interval")
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("OIZYS_SLOT", "alt")
	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() failed: %v", err)
	}
	if e.Slot != "alt" {
		t.Errorf("slot = %q, want alt", e.Slot)
	}
	if e.SSHAddr == "" {
		t.Error("ssh address default not applied")
	}
}
