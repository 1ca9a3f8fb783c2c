package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/platform/tui"
	"github.com/Slepzs/oizys-keres/internal/session"
	"github.com/Slepzs/oizys-keres/internal/storage"
)

var (
	flagTickRate int
	flagAutosave time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a save slot",
	Long: `Load a save slot, credit the time you were away, and play.

Without --slot, a picker lists existing saves and offers a new game.

Controls:
  Tab/Shift+Tab  - Switch tabs
  Up/Down        - Move selection
  Enter          - Train / fight / craft / build / equip
  A              - Toggle automation
  V              - Cycle skill variant
  X              - Flee combat / unequip
  F              - Toggle auto-fight
  M              - Cycle training mode
  Ctrl+S         - Save
  Q/Ctrl+C       - Save and quit

Examples:
  oizys play
  oizys play --slot main
  oizys play --slot fresh --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagTickRate, "tick-rate", 10, "Screen updates per second")
	playCmd.Flags().DurationVar(&flagAutosave, "autosave", 30*time.Second, "Autosave interval (0 disables)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	engine, err := loadEngine()
	if err != nil {
		fatal("loading tables", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagTickRate,
		Seed:     flagSeed,
		Slot:     flagSlot,
		Autosave: flagAutosave,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening saves database", err)
	}
	defer store.Close()

	if !cmd.Flags().Changed("slot") {
		saves, listErr := store.ListSaves()
		if listErr != nil {
			fatal("listing saves", listErr)
		}
		if len(saves) > 0 {
			choice, menuErr := tui.RunMenu(saves, cfg)
			if menuErr != nil {
				fatal("running menu", menuErr)
			}
			if choice.Quit {
				return
			}
			cfg = choice.Config
		}
	}

	sess := session.New(engine, store, session.Options{
		Slot:   cfg.Slot,
		Seed:   cfg.Seed,
		Logger: logger,
	})
	offline, err := sess.Load(time.Now().UnixMilli())
	if err != nil {
		fatal("loading save", err)
	}

	runErr := tui.Run(sess, cfg, offline)
	if err := sess.Save(); err != nil {
		logger.Error("final save failed", "err", err)
	}
	if runErr != nil {
		fatal("running game", runErr)
	}
}
