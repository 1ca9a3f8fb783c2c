package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds runtime settings read from OIZYS_* environment variables.
// Command-line flags default to these values.
type Env struct {
	DBPath      string `env:"OIZYS_DB" envDefault:"~/.oizys/saves.db"`
	Slot        string `env:"OIZYS_SLOT" envDefault:"default"`
	LogLevel    string `env:"OIZYS_LOG_LEVEL" envDefault:"info"`
	BalancePath string `env:"OIZYS_BALANCE"`
	ContentPath string `env:"OIZYS_CONTENT"`
	SSHAddr     string `env:"OIZYS_SSH_ADDR" envDefault:":23234"`
	HostKeyPath string `env:"OIZYS_HOST_KEY"`
	Seed        uint32 `env:"OIZYS_SEED"`
}

// LoadEnv parses the environment into Env.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("config: parse environment: %w", err)
	}
	return e, nil
}
