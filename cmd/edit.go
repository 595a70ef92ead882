package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// TODO: shell out to $EDITOR on the resolved config path once the driver
// exposes a config-path lookup independent of Load (out of core scope,
// spec.md §1).
var editCmd = &cobra.Command{
	Use:    "edit <game>",
	Short:  "Open the game's config file in an editor (not yet implemented)",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(c *cobra.Command, args []string) error {
		return fmt.Errorf("edit is not implemented yet")
	},
}
