package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/session"
	"github.com/Slepzs/oizys-keres/internal/storage"
)

var (
	flagAway   time.Duration
	flagDryRun bool
)

var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Apply offline progress to a save and report it",
	Long: `Credit a save with the time since it was last played, without opening
the game, and print what happened.

Offline time is capped by the balance table (offline.max_ms). Use --away to
pretend a given amount of time has passed since the save was last active.

Examples:
  oizys offline --slot main
  oizys offline --slot main --away 3h --dry-run`,
	Args: cobra.NoArgs,
	Run:  runOffline,
}

func init() {
	offlineCmd.Flags().DurationVar(&flagAway, "away", 0, "Pretend this much time passed (0 = real clock)")
	offlineCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report without saving")
}

func runOffline(_ *cobra.Command, _ []string) {
	engine, err := loadEngine()
	if err != nil {
		fatal("loading tables", err)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening saves database", err)
	}
	defer store.Close()

	state, found, err := store.LoadState(flagSlot)
	if err != nil {
		fatal("loading save", err)
	}
	if !found {
		fatal("loading save", fmt.Errorf("slot %q is empty", flagSlot))
	}

	now := time.Now().UnixMilli()
	if flagAway > 0 {
		now = state.LastActiveAt + flagAway.Milliseconds()
	}

	sess := session.New(engine, store, session.Options{Slot: flagSlot, Logger: logger})
	res, err := sess.Load(now)
	if err != nil {
		fatal("loading save", err)
	}

	away := time.Duration(res.ElapsedMs) * time.Millisecond
	credited := time.Duration(res.CappedMs) * time.Millisecond
	if res.ElapsedMs <= 0 {
		fmt.Printf("Slot %q is up to date.\n", flagSlot)
		return
	}
	fmt.Printf("Away %s, credited %s", durationText(away), durationText(credited))
	if res.WasCapped {
		fmt.Print(" (capped)")
	}
	fmt.Println()

	counts := make(map[event.Type]int)
	for _, ev := range res.Events {
		counts[ev.Type()]++
	}
	printCounts(counts)

	fmt.Println()
	for _, line := range sess.Log(20) {
		fmt.Println("  " + line.Text)
	}

	if flagDryRun {
		return
	}
	if err := sess.Save(); err != nil {
		fatal("saving", err)
	}
}
