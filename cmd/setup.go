package cmd

import (
	"github.com/spf13/cobra"

	"modoverlay/driver"
)

var setupCmd = &cobra.Command{
	Use:   "setup <game> <mod>",
	Short: "Interactively record filesystem changes into a new mod",
	Long: `Mounts a dedicated writable overlay, waits for a single Enter on
standard input while the caller makes changes, then promotes the upper
directory into mod_root_path/<mod>.`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		d, cleanup, err := buildDriver()
		if err != nil {
			return err
		}
		defer cleanup()

		gameID, modID := args[0], args[1]
		return d.Run(driver.ActionSetup, gameID, driver.RunOptions{NewModID: modID})
	},
}
