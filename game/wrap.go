package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"modoverlay/command"
	"modoverlay/errs"
	"modoverlay/util"
)

// Wrap activates opts, runs cmd without waiting for fatal errors to abort
// the teardown, waits for the settling delay, then always deactivates
// (spec.md §4.6 wrap).
func (g *Game) Wrap(opts ActivateOptions, cmd *command.Command) error {
	if err := g.Activate(opts); err != nil {
		return err
	}

	if _, err := cmd.Run(); err != nil {
		g.Logger.Error("%s: wrapped command %q failed: %v", g.ID, cmd.ID, err)
	}

	time.Sleep(settlingDelay)

	return g.Deactivate()
}

// Setup runs the interactive mod-creation flow: mount a dedicated
// writable overlay, let the caller make changes, then fold the upper
// directory's contents into a new mod folder (spec.md §4.6 setup).
func (g *Game) Setup(newModID string) error {
	modRoot := g.Config.ModRootPath
	if modRoot == "" {
		modRoot = g.Layout.DefaultModRoot
	}
	target := filepath.Join(modRoot, newModID)

	if util.FileExists(target) {
		return &errs.ValueError{Key: "mod_id", Reason: fmt.Sprintf("%s already exists", target)}
	}

	if err := g.Activate(ActivateOptions{Writable: true, IsSetup: true}); err != nil {
		return err
	}

	fmt.Printf("Setup mode active for %s. Make your changes, then press Enter to finish.\n", g.ID)
	reader := bufio.NewReader(os.Stdin)
	if _, err := reader.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		g.Logger.Warn("%s: reading setup confirmation: %v", g.ID, err)
	}

	if err := g.Deactivate(); err != nil {
		return err
	}

	setupDir := g.Layout.UpperDirFor("", true)
	if err := os.MkdirAll(modRoot, 0755); err != nil {
		return &errs.FileErrorWrap{Op: "create mod root", Path: modRoot, Err: err}
	}
	if err := os.Rename(setupDir, target); err != nil {
		return &errs.FileErrorWrap{Op: "promote setup directory", Path: setupDir, Err: err}
	}

	return nil
}
