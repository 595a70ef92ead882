package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusHistoryLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report games left in a non-NORMAL state and recent activation history",
	Long: `Status performs no activation or deactivation: it classifies every
configured game and, if the activation history database is available,
prints the most recent recorded transitions for each. Classification
still removes an empty original directory that sits beside a non-empty
moved-aside one.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		d, cleanup, err := buildDriver()
		if err != nil {
			return err
		}
		defer cleanup()

		entries, err := d.Diagnose()
		if err != nil {
			return fmt.Errorf("diagnose: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("all games normal")
		}
		for _, e := range entries {
			if e.Err != nil {
				fmt.Printf("%s: error: %v\n", e.GameID, e.Err)
				continue
			}
			fmt.Printf("%s: %s (%s)\n", e.GameID, e.State, e.Reason)
		}

		if d.History == nil {
			return nil
		}

		ids, err := d.History.AllGameIDs()
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		for _, id := range ids {
			recent, err := d.History.Recent(id, statusHistoryLimit)
			if err != nil {
				fmt.Printf("%s: history error: %v\n", id, err)
				continue
			}
			fmt.Printf("%s history:\n", id)
			for _, e := range recent {
				outcome := "ok"
				if !e.Success {
					outcome = "failed"
				}
				fmt.Printf("  %s  %-10s set=%-12q %s  %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.SetName, outcome, e.Detail)
			}
		}

		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusHistoryLimit, "history-limit", 5, "number of recent history entries to print per game")
}
