package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
	"github.com/Slepzs/oizys-keres/internal/session"
	"github.com/Slepzs/oizys-keres/internal/sim"
	"github.com/Slepzs/oizys-keres/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimStep     time.Duration
	flagSimSkill    string
	flagSimZone     string
	flagSimRecipe   string
	flagSimAutomate []string
	flagSimFromSlot bool
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless simulation and print a summary",
	Long: `Advance a game without a screen and report where it ends up.

By default a new game is simulated and nothing is written. Use
--from-slot to continue an existing save and --save to keep the result.
The same seed, duration and step always produce the same result.

Examples:
  oizys simulate --duration 8h
  oizys simulate --duration 2h --skill mining --seed 7
  oizys simulate --zone farmland --duration 30m
  oizys simulate --from-slot --slot main --duration 24h --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", 8*time.Hour, "Simulated time")
	simulateCmd.Flags().DurationVar(&flagSimStep, "step", time.Second, "Time advanced per step")
	simulateCmd.Flags().StringVar(&flagSimSkill, "skill", "", "Gathering skill to train")
	simulateCmd.Flags().StringVar(&flagSimZone, "zone", "", "Combat zone to fight in")
	simulateCmd.Flags().StringVar(&flagSimRecipe, "recipe", "", "Recipe to automate")
	simulateCmd.Flags().StringSliceVar(&flagSimAutomate, "automate", nil, "Skills to automate in the background")
	simulateCmd.Flags().BoolVar(&flagSimFromSlot, "from-slot", false, "Continue the --slot save instead of a new game")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Write the result to --slot")
}

func runSimulate(_ *cobra.Command, _ []string) {
	engine, err := loadEngine()
	if err != nil {
		fatal("loading tables", err)
	}
	if flagSimStep <= 0 {
		fatal("parsing flags", fmt.Errorf("--step must be positive"))
	}

	var store *storage.Store
	if flagSimFromSlot || flagSimSave {
		if store, err = storage.Open(flagDBPath); err != nil {
			fatal("opening saves database", err)
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	opts := session.Options{Slot: flagSlot, Seed: seed, Logger: logger}

	var (
		sess  *session.Session
		start int64
	)
	if flagSimFromSlot {
		state, found, loadErr := store.LoadState(flagSlot)
		if loadErr != nil {
			fatal("loading save", loadErr)
		}
		if !found {
			fatal("loading save", fmt.Errorf("slot %q is empty", flagSlot))
		}
		sess = session.New(engine, store, opts)
		start = state.LastTickAt
	} else {
		sess = session.New(engine, nil, opts)
	}
	if _, err := sess.Load(start); err != nil {
		fatal("starting game", err)
	}

	for _, setup := range simulationSetup() {
		if res := sess.Do(setup); !res.Success {
			logger.Warn("setup step rejected", "err", res.Err)
		}
	}

	began := time.Now()
	counts := make(map[event.Type]int)
	from := sess.State().LastTickAt
	end := from + flagSimDuration.Milliseconds()
	for now := from; now < end; {
		now = min(now+flagSimStep.Milliseconds(), end)
		for _, ev := range sess.Advance(now) {
			counts[ev.Type()]++
		}
	}

	printSummary(engine, sess.State(), counts, flagSimDuration, time.Since(began))

	if flagSimSave {
		if flagSimFromSlot {
			err = sess.Save()
		} else {
			err = store.SaveState(flagSlot, sess.RunID(), sess.State())
		}
		if err != nil {
			fatal("saving", err)
		}
		fmt.Printf("\nSaved to slot %q\n", flagSlot)
	}
}

// simulationSetup turns the setup flags into commands.
func simulationSetup() []session.Command {
	var cmds []session.Command
	if flagSimSkill != "" {
		skill := flagSimSkill
		cmds = append(cmds, func(e *sim.Engine, st core.GameState) sim.Result { return e.SetActiveSkill(st, skill) })
	}
	for _, id := range flagSimAutomate {
		cmds = append(cmds, func(e *sim.Engine, st core.GameState) sim.Result { return e.SetAutomation(st, id, true) })
	}
	if flagSimRecipe != "" {
		recipe := flagSimRecipe
		cmds = append(cmds, func(e *sim.Engine, st core.GameState) sim.Result {
			return e.SetCraftingAutomation(st, recipe, 1, true)
		})
	}
	if flagSimZone != "" {
		zone := flagSimZone
		cmds = append(cmds, func(e *sim.Engine, st core.GameState) sim.Result {
			return e.StartCombat(st, zone, "", st.LastTickAt)
		})
	}
	return cmds
}

func printSummary(engine *sim.Engine, st core.GameState, counts map[event.Type]int, simulated, took time.Duration) {
	cat := engine.Catalog
	fmt.Printf("Simulated %s in %s (seed %d)\n\n", durationText(simulated), took.Round(time.Millisecond), st.Seed)
	fmt.Printf("Player     Lv %d (%s xp)  HP %d/%d  Combat Lv %d  Deaths %d\n",
		st.Player.Level, humanize.Comma(int64(st.Player.XP)),
		st.Player.CurrentHP, st.Player.MaxHP, engine.CombatLevel(st), st.Player.Deaths)

	fmt.Println("\nSkills")
	for _, def := range cat.Skills {
		sk := st.Skills[def.ID]
		fmt.Printf("  %-14s Lv %-3d %10s xp\n", def.Name, sk.Level, humanize.Comma(int64(sk.XP)))
	}
	for _, def := range cat.CombatSkills {
		sk := st.CombatSkills[def.ID]
		fmt.Printf("  %-14s Lv %-3d %10s xp\n", def.Name, sk.Level, humanize.Comma(int64(sk.XP)))
	}

	fmt.Println("\nResources")
	for _, def := range cat.Resources {
		if r := st.Resources[def.ID]; r.Amount > 0 {
			fmt.Printf("  %-14s %s\n", def.Name, humanize.Comma(int64(r.Amount)))
		}
	}
	if len(st.Inventory.Items) > 0 {
		fmt.Println("\nItems")
		for _, stack := range st.Inventory.Items {
			fmt.Printf("  %-14s %s\n", stack.ItemID, humanize.Comma(int64(stack.Quantity)))
		}
	}

	fmt.Printf("\nKills %s  Actions %s  Crafts %s  Quests %d  Achievements %d\n",
		humanize.Comma(int64(st.Stats.EnemiesKilled)),
		humanize.Comma(int64(st.Stats.ActionsCompleted)),
		humanize.Comma(int64(st.Stats.ItemsCrafted)),
		st.Stats.QuestsCompleted, st.Stats.AchievementsUnlocked)

	printCounts(counts)
}

func printCounts(counts map[event.Type]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Println("\nEvents")
	for _, t := range slices.Sorted(maps.Keys(counts)) {
		fmt.Printf("  %-30s %s\n", t, humanize.Comma(int64(counts[t])))
	}
}

func durationText(d time.Duration) string {
	start := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(start, start.Add(d), "", ""))
}
