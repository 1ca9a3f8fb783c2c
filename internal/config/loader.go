package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBalance loads the balance configuration.
// Search order: customPath -> ~/.oizys/configs/balance.yaml -> ./configs/balance.yaml -> embedded default
func LoadBalance(customPath string) (Balance, error) {
	cfg, err := LoadYAML(customPath, "balance.yaml", defaultBalanceYAML, DefaultBalance)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadYAML decodes a YAML document of type T using the standard search order.
// Files are decoded over fallback(), so a partial file only overrides the
// keys it names. A custom path must be readable and valid; the user and local
// directories are tried silently.
func LoadYAML[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			user := fallback()
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		local := fallback()
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".oizys", "configs", filename)
}

// Validate rejects balance values the simulation cannot run with.
func (b Balance) Validate() error {
	switch {
	case b.Tick.IntervalMs <= 0:
		return fmt.Errorf("config: tick.interval_ms must be positive, got %d", b.Tick.IntervalMs)
	case b.Offline.ChunkMs <= 0:
		return fmt.Errorf("config: offline.chunk_ms must be positive, got %d", b.Offline.ChunkMs)
	case b.Offline.MaxMs < 0:
		return fmt.Errorf("config: offline.max_ms must not be negative, got %d", b.Offline.MaxMs)
	case b.Combat.MaxSteps <= 0:
		return fmt.Errorf("config: combat.max_steps must be positive, got %d", b.Combat.MaxSteps)
	case b.Combat.PlayerAttackIntervalMs <= 0:
		return fmt.Errorf("config: combat.player_attack_interval_ms must be positive, got %d", b.Combat.PlayerAttackIntervalMs)
	}
	for name, c := range map[string]CurveConfig{"skill": b.XP.Skill, "combat": b.XP.Combat, "player": b.XP.Player} {
		if c.Base <= 0 || c.Growth < 1 || c.MaxLevel < 2 {
			return fmt.Errorf("config: xp.%s curve is invalid (base %v, growth %v, max level %d)", name, c.Base, c.Growth, c.MaxLevel)
		}
	}
	return nil
}
