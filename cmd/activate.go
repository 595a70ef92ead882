package cmd

import (
	"github.com/spf13/cobra"

	"modoverlay/driver"
)

var (
	activateSet      string
	activateWritable bool
)

var activateCmd = &cobra.Command{
	Use:   "activate [game]",
	Short: "Mount a mod overlay in place of a game's install directory",
	Long: `Omitting [game] applies activation to every configured game.
--set "" explicitly mounts with no mod layer (ignore_overlays).`,
	Args: cobra.MaximumNArgs(1),
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

		opts := driver.RunOptions{Writable: activateWritable}
		if c.Flags().Changed("set") {
			opts.SetName = &activateSet
		}

		return d.Run(driver.ActionActivate, gameID, opts)
	},
}

func init() {
	activateCmd.Flags().StringVar(&activateSet, "set", "", "mod set to activate (empty string disables layering)")
	activateCmd.Flags().BoolVar(&activateWritable, "writable", false, "force a writable overlay regardless of the set's own flag")
}
