package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagShowBalance bool

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Validate and summarize the content and balance tables",
	Long: `Load the balance and content tables through the normal search order,
validate them and print a summary. A custom file that fails to load or
validate exits non-zero, which makes this suitable for CI on content edits.

Search order for each file:
  --balance / --content path
  ~/.oizys/configs/<file>
  ./configs/<file>
  embedded defaults

Examples:
  oizys content
  oizys content --content ./configs/content.yaml
  oizys content --balance-yaml > configs/balance.yaml`,
	Args: cobra.NoArgs,
	Run:  runContent,
}

func init() {
	contentCmd.Flags().BoolVar(&flagShowBalance, "balance-yaml", false, "Print the resolved balance as YAML")
}

func runContent(_ *cobra.Command, _ []string) {
	engine, err := loadEngine()
	if err != nil {
		fatal("loading tables", err)
	}

	if flagShowBalance {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(engine.Balance); err != nil {
			fatal("encoding balance", err)
		}
		return
	}

	c := engine.Catalog
	fmt.Println("Content OK")
	fmt.Printf("  %-16s %d\n", "skills", len(c.Skills))
	fmt.Printf("  %-16s %d\n", "combat skills", len(c.CombatSkills))
	fmt.Printf("  %-16s %d\n", "resources", len(c.Resources))
	fmt.Printf("  %-16s %d\n", "items", len(c.Items))
	fmt.Printf("  %-16s %d\n", "enemies", len(c.Enemies))
	fmt.Printf("  %-16s %d\n", "zones", len(c.Zones))
	fmt.Printf("  %-16s %d\n", "recipes", len(c.Recipes))
	fmt.Printf("  %-16s %d\n", "infrastructure", len(c.Infrastructure))
	fmt.Printf("  %-16s %d\n", "quests", len(c.Quests))
	fmt.Printf("  %-16s %d\n", "achievements", len(c.Achievements))

	b := engine.Balance
	fmt.Println("\nBalance OK")
	fmt.Printf("  %-16s %dms\n", "tick", b.Tick.IntervalMs)
	fmt.Printf("  %-16s %s\n", "offline cap", durationText(time.Duration(b.Offline.MaxMs)*time.Millisecond))
	fmt.Printf("  %-16s %d\n", "skill max level", b.XP.Skill.MaxLevel)
	fmt.Printf("  %-16s %d\n", "bag slots", b.NewGame.BagSlots)
}
