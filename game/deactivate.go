package game

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"modoverlay/errs"
	"modoverlay/util"
)

// Deactivate tears down any active overlay and restores the original
// directory (spec.md §4.6). It is a no-op from NORMAL, so calling it
// twice in a row is safe.
func (g *Game) Deactivate() error {
	g.terminateRunningChildren()

	state, reason, err := g.Classify()
	if err != nil {
		return err
	}

	switch state {
	case StateNormal:
		return nil

	case StateInvalid:
		return &errs.StateInvalidError{GameID: g.ID, Reason: reason}

	case StateMounted:
		if uerr := g.unmount(); uerr != nil {
			return &errs.StateInvalidError{GameID: g.ID, Reason: "unmount failed: " + uerr.Error()}
		}
		time.Sleep(settlingDelay)
	}

	// StateMoved falls straight through, as does StateMounted after a
	// successful unmount.
	if rerr := util.RemoveAll(g.Layout.OriginalPath); rerr != nil {
		return &errs.FileErrorWrap{Op: "remove empty original", Path: g.Layout.OriginalPath, Err: rerr}
	}
	if rerr := os.Rename(g.Layout.MovedPath, g.Layout.OriginalPath); rerr != nil {
		return &errs.FileErrorWrap{Op: "restore moved-aside original", Path: g.Layout.MovedPath, Err: rerr}
	}

	return nil
}

func (g *Game) unmount() error {
	prevWd, err := util.Getwd()
	if err != nil {
		return err
	}
	if err := util.Chdir("/"); err != nil {
		return err
	}

	umountErr := g.Helper.Umount(context.Background(), g.ID)

	if err := util.Chdir(prevWd); err != nil {
		g.Logger.Warn("%s: failed to restore working directory %s: %v", g.ID, prevWd, err)
	}

	return umountErr
}

// terminateRunningChildren signals every PID recorded in runtime_dir by a
// prior non-waiting command and removes its marker. Per-PID errors are
// logged and skipped; a process that ignores the signal may cause the
// following unmount to fail (spec.md §4.6 step 1).
func (g *Game) terminateRunningChildren() {
	entries, err := os.ReadDir(g.Layout.RuntimeDir)
	if err != nil {
		return
	}

	for _, e := range entries {
		pid, perr := strconv.Atoi(e.Name())
		if perr != nil {
			continue
		}

		if proc, ferr := os.FindProcess(pid); ferr == nil {
			if serr := proc.Signal(syscall.SIGTERM); serr != nil {
				g.Logger.Warn("%s: failed to signal pid %d: %v", g.ID, pid, serr)
			}
		}

		marker := filepath.Join(g.Layout.RuntimeDir, e.Name())
		if rerr := os.Remove(marker); rerr != nil {
			g.Logger.Warn("%s: failed to remove pid marker %s: %v", g.ID, marker, rerr)
		}
	}
}
