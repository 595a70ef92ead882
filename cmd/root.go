// Package cmd wires the cobra CLI surface onto driver.Driver: one
// subcommand per spec.md §6 action, sharing a lazily-constructed Driver
// built from the resolved XDG base directories.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"modoverlay/driver"
	"modoverlay/helper"
	"modoverlay/history"
	"modoverlay/log"
	"modoverlay/paths"
)

var rootCmd = &cobra.Command{
	Use:   "mod-manager",
	Short: "Activate and deactivate per-game mod overlays",
	Long: `mod-manager constructs an overlay filesystem in place of a game's
install directory so unmodified launchers see the game combined with a
prioritized stack of mod directories.`,
	SilenceUsage: true,
}

var (
	flagElevate    string
	flagHelperPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagElevate, "elevate", "pkexec", "elevation command used to invoke the privileged helper")
	rootCmd.PersistentFlags().StringVar(&flagHelperPath, "helper-path", "", "path to the privileged helper executable (defaults to the built-in path)")

	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(wrapCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the root command; main calls this and exits non-zero on error.
func Execute() error {
	return rootCmd.Execute()
}

// buildDriver constructs a driver.Driver from the resolved XDG base
// directories, a stdout+file logger, the configured privileged helper,
// and the diagnostic activation-history database. Failing to open the
// history database or the log files is logged and treated as disabled,
// not fatal: neither is authoritative over filesystem state. The
// returned cleanup func closes whatever was successfully opened and
// must be deferred by the caller.
func buildDriver() (*driver.Driver, func(), error) {
	base, err := paths.ResolveBase()
	if err != nil {
		return nil, func() {}, fmt.Errorf("resolve base directories: %w", err)
	}

	stdout := log.StdoutLogger{}
	logger := log.LibraryLogger(stdout)

	h := &helper.ExecHelper{Elevate: flagElevate, HelperPath: flagHelperPath}
	if h.HelperPath == "" {
		h = helper.NewExecHelper("")
		h.Elevate = flagElevate
	}

	baseDir := filepath.Join(base.CacheHome, "mod-manager")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		stdout.Warn("failed to create state directory %s: %v", baseDir, err)
		return driver.New(base, h, logger, nil), func() {}, nil
	}

	var closers []func()

	fileLogger, ferr := log.NewFileLogger(filepath.Join(baseDir, "logs"))
	if ferr != nil {
		stdout.Warn("failed to open activity/debug log files: %v", ferr)
	} else {
		logger = log.MultiLogger{Sinks: []log.LibraryLogger{stdout, fileLogger}}
		closers = append(closers, fileLogger.Close)
	}

	hist, herr := history.Open(filepath.Join(baseDir, "history.db"))
	if herr != nil {
		logger.Warn("failed to open activation history: %v", herr)
		hist = nil
	} else {
		closers = append(closers, func() {
			if cerr := hist.Close(); cerr != nil {
				logger.Warn("failed to close activation history: %v", cerr)
			}
		})
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	return driver.New(base, h, logger, hist), cleanup, nil
}
