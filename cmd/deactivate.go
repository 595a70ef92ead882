package cmd

import (
	"github.com/spf13/cobra"

	"modoverlay/driver"
)

var deactivateCmd = &cobra.Command{
	Use:   "deactivate [game]",
	Short: "Unmount a game's overlay and restore its original directory",
	Long:  `Omitting [game] deactivates every configured game.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		d, cleanup, err := buildDriver()
		if err != nil {
			return err
		}
		defer cleanup()

		var gameID string
		if len(args) == 1 {
			gameID = args[0]
		}

		return d.Run(driver.ActionDeactivate, gameID, driver.RunOptions{})
	},
}
