// oizys is a deterministic idle RPG that runs in the terminal.
//
// Usage:
//
//	oizys play               - Play a save slot interactively
//	oizys simulate           - Run a headless simulation and print a summary
//	oizys offline            - Apply offline progress to a save and report it
//	oizys saves              - List, inspect or delete save slots
//	oizys content            - Validate and summarize the content tables
//	oizys serve              - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.oizys/saves.db)
//	--slot <name>       - Save slot to use
//	--seed <value>      - RNG seed for new games
//	--log-level <lvl>   - debug, info, warn or error
//	--balance <path>    - Custom balance YAML
//	--content <path>    - Custom content YAML
//
// Every flag defaults from its OIZYS_* environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Slepzs/oizys-keres/internal/config"
	"github.com/Slepzs/oizys-keres/internal/content"
	"github.com/Slepzs/oizys-keres/internal/sim"
)

var (
	// Global flags
	flagDBPath   string
	flagSlot     string
	flagSeed     uint32
	flagLogLevel string
	flagBalance  string
	flagContent  string

	logger *log.Logger

	// env is resolved before any init so every command's flags can
	// default from it.
	env = loadEnv()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oizys",
	Short: "Oizys - an idle RPG in your terminal",
	Long: `Oizys is an idle RPG: train gathering skills, craft, build and fight
while the simulation keeps running, even while you are away.

Available commands:
  play      - Play a save slot
  simulate  - Headless simulation for balancing
  offline   - Apply offline progress to a save
  saves     - Manage save slots and their journals
  content   - Validate content and balance tables
  serve     - Start SSH server for remote play

Examples:
  oizys play
  oizys play --slot main
  oizys simulate --duration 8h --skill mining
  oizys saves list
  oizys serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "oizys",
			Level:           level,
		})
		return nil
	},
}

func loadEnv() config.Env {
	e, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return e
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", env.Slot, "Save slot")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", env.Seed, "RNG seed for new games (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagBalance, "balance", env.BalancePath, "Path to custom balance YAML")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", env.ContentPath, "Path to custom content YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(offlineCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadEngine builds the simulation engine from the configured tables.
func loadEngine() (*sim.Engine, error) {
	balance, err := config.LoadBalance(flagBalance)
	if err != nil {
		return nil, fmt.Errorf("cannot load balance: %w", err)
	}
	catalog, err := content.Load(flagContent)
	if err != nil {
		return nil, fmt.Errorf("cannot load content: %w", err)
	}
	logger.Debug("tables loaded",
		"skills", len(catalog.Skills),
		"enemies", len(catalog.Enemies),
		"recipes", len(catalog.Recipes),
		"tick", balance.Tick.IntervalMs,
	)
	return sim.New(catalog, balance), nil
}

// fatal prints an error and exits.
func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
