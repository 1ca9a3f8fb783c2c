package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Slepzs/oizys-keres/internal/storage"
)

var flagJournalLimit int

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List, inspect or delete save slots",
	Long: `Manage the save slots in the database.

Examples:
  oizys saves
  oizys saves journal main --limit 50
  oizys saves delete old-run`,
	Args: cobra.NoArgs,
	Run:  runSavesList,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	Run:   runSavesList,
}

var savesJournalCmd = &cobra.Command{
	Use:   "journal <slot>",
	Short: "Show the most recent journal entries of a slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesJournal,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a slot and its journal",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesDelete,
}

func init() {
	savesJournalCmd.Flags().IntVar(&flagJournalLimit, "limit", 20, "Entries to show")

	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesJournalCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening saves database", err)
	}
	return store
}

func runSavesList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		fatal("listing saves", err)
	}
	if len(saves) == 0 {
		fmt.Println("No saves yet. Run 'oizys play' to start one.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tLEVEL\tTOTAL\tLAST PLAYED\tSAVED")
	for _, s := range saves {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			s.Slot, s.PlayerLevel, s.TotalLevel,
			humanize.Time(time.UnixMilli(s.LastActiveAt)),
			humanize.Time(s.Updated()),
		)
	}
	w.Flush()
}

func runSavesJournal(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	entries, err := store.RecentEvents(args[0], flagJournalLimit)
	if err != nil {
		fatal("reading journal", err)
	}
	if len(entries) == 0 {
		fmt.Printf("Journal for %q is empty.\n", args[0])
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTYPE\tEVENT")
	// Oldest first reads naturally.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(w, "%s\t%s\t%s\n", time.UnixMilli(e.At).Format(time.DateTime), e.Type, e.Message)
	}
	w.Flush()
}

func runSavesDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteSave(args[0]); err != nil {
		fatal("deleting save", err)
	}
	fmt.Printf("Deleted slot %q\n", args[0])
}
