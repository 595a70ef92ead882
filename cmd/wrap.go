package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"modoverlay/command"
	"modoverlay/driver"
)

var (
	wrapSet      string
	wrapWritable bool
)

var wrapCmd = &cobra.Command{
	Use:   "wrap <game> [--set SET] [--writable] -- <command>...",
	Short: "Activate a game's overlay, run a command, then deactivate",
	Long: `The -- separator before the wrapped command is mandatory: everything
after it is passed to the child process verbatim, with no shell expansion.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		dash := c.ArgsLenAtDash()
		if dash < 0 {
			return fmt.Errorf("wrap requires a -- separator before the wrapped command")
		}
		if dash < 1 {
			return fmt.Errorf("wrap requires a game id before --")
		}

		gameID := args[0]
		argv := args[dash:]
		if len(argv) == 0 {
			return fmt.Errorf("wrap requires a command after --")
		}

		d, cleanup, err := buildDriver()
		if err != nil {
			return err
		}
		defer cleanup()

		opts := driver.RunOptions{Writable: wrapWritable, WrapCmd: command.Wrap(argv)}
		if c.Flags().Changed("set") {
			opts.SetName = &wrapSet
		}

		return d.Run(driver.ActionWrap, gameID, opts)
	},
}

func init() {
	wrapCmd.Flags().StringVar(&wrapSet, "set", "", "mod set to activate before running the wrapped command")
	wrapCmd.Flags().BoolVar(&wrapWritable, "writable", false, "force a writable overlay regardless of the set's own flag")
}
