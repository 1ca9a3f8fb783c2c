package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/platform/tui"
	"github.com/Slepzs/oizys-keres/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH user gets a persistent game in the slot "ssh:<user>". Connecting
again later credits the time they were away. Several connections by the
same user share one live game.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.oizys/host_key

Examples:
  oizys serve                           # Listen on :23234 with auto-generated key
  oizys serve --ssh :2222               # Listen on port 2222
  oizys serve --host-key ./my_host_key  # Use specific host key
  oizys serve --db ./saves.db           # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", env.HostKeyPath, "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	engine, err := loadEngine()
	if err != nil {
		fatal("loading tables", err)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening saves database", err)
	}
	defer store.Close()

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Runtime:     runtime,
	}

	server, err := tui.NewSSHServer(cfg, engine, store, logger.WithPrefix("oizys-ssh"))
	if err != nil {
		fatal("creating server", err)
	}

	fmt.Printf("Starting oizys SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("serving", err)
	}
}
