package game

import (
	"context"
	"fmt"
	"os"
	"strings"

	"modoverlay/command"
	"modoverlay/errs"
	"modoverlay/modset"
	"modoverlay/util"
)

// Activate moves the original directory aside (if needed) and mounts an
// overlay built from opts.SetName's resolved mod stack (spec.md §4.6).
// Any error triggers a best-effort Deactivate before it is returned, so a
// failed activation never leaks a half-built mount.
func (g *Game) Activate(opts ActivateOptions) (err error) {
	defer func() {
		if err != nil {
			if derr := g.Deactivate(); derr != nil {
				g.Logger.Error("%s: cleanup deactivate after failed activate also failed: %v", g.ID, derr)
			}
		}
	}()

	state, reason, cerr := g.Classify()
	if cerr != nil {
		return cerr
	}

	if state == StateMounted {
		if derr := g.Deactivate(); derr != nil {
			return derr
		}
		state, reason, cerr = g.Classify()
		if cerr != nil {
			return cerr
		}
	}

	if state == StateInvalid {
		return &errs.StateInvalidError{GameID: g.ID, Reason: reason}
	}

	if state == StateNormal {
		if rerr := os.Rename(g.Layout.OriginalPath, g.Layout.MovedPath); rerr != nil {
			return &errs.FileErrorWrap{Op: "rename original aside", Path: g.Layout.OriginalPath, Err: rerr}
		}
		state, reason, cerr = g.Classify()
		if cerr != nil {
			return cerr
		}
		if state != StateMoved {
			return &errs.StateInvalidError{GameID: g.ID, Reason: "rename did not result in MOVED state: " + reason}
		}
	}

	if mkerr := os.MkdirAll(g.Layout.OriginalPath, 0755); mkerr != nil {
		return &errs.FileErrorWrap{Op: "recreate original", Path: g.Layout.OriginalPath, Err: mkerr}
	}

	var ms *modset.ModSet
	if opts.SetName != "" {
		modRoot := g.Config.ModRootPath
		if modRoot == "" {
			modRoot = g.Layout.DefaultModRoot
		}
		ms, err = modset.Resolve(opts.SetName, g.Config, modRoot)
		if err != nil {
			return err
		}
	}

	var lowers []string
	if ms != nil {
		lowers = ms.BuildLowerList()
	}
	lowers = append(lowers, g.Layout.MovedPath)

	writable := opts.Writable || opts.IsSetup || g.Config.Writable || (ms != nil && ms.Writable())

	if !writable && opts.SetName == "" {
		if mkerr := os.MkdirAll(g.Layout.DummyEmptyDir, 0755); mkerr != nil {
			return &errs.FileErrorWrap{Op: "create dummy lower dir", Path: g.Layout.DummyEmptyDir, Err: mkerr}
		}
		lowers = append(lowers, g.Layout.DummyEmptyDir)
	}

	options := "x-gvfs-hide,comment=x-gvfs-hide,lowerdir=" + strings.Join(lowers, ":")

	if writable {
		upperDir := g.Layout.UpperDirFor(opts.SetName, opts.IsSetup)
		dirs := []string{g.Layout.CacheDir, upperDir, g.Layout.WorkDir, g.Layout.WorkIndexDir(), g.Layout.WorkWorkDir()}
		for _, d := range dirs {
			if mkerr := os.MkdirAll(d, 0755); mkerr != nil {
				return &errs.FileErrorWrap{Op: "create overlay directory", Path: d, Err: mkerr}
			}
		}

		if herr := g.Helper.CleanWorkdir(context.Background(), g.ID, g.Layout.WorkDir); herr != nil {
			return herr
		}

		options += fmt.Sprintf(",upperdir=%s,workdir=%s", upperDir, g.Layout.WorkDir)
	}

	if merr := g.mountAt(options); merr != nil {
		return merr
	}

	mounted, perr := g.Probe(g.Layout.OriginalPath)
	if perr != nil {
		return perr
	}
	if !mounted {
		return &errs.StateInvalidError{GameID: g.ID, Reason: "mount invocation succeeded but path is not a mountpoint"}
	}

	shouldRunPre := g.Config.RunPreCommand || (ms != nil && ms.ShouldRunPreCommands())

	var cmds []*command.Command
	if shouldRunPre {
		for i := range g.Config.GlobalPreCommands {
			cs := g.Config.GlobalPreCommands[i]
			cmds = append(cmds, command.FromSpec(fmt.Sprintf("pre_command[%d]", i), &cs))
		}
	}
	if ms != nil {
		cmds = append(cmds, ms.Commands()...)
	}
	if len(cmds) > 0 {
		g.runCommands(cmds)
	}

	return nil
}

// mountAt changes the working directory outside the target path before
// invoking the helper, so the process itself never holds the mountpoint
// open, then restores it afterward regardless of the mount outcome.
func (g *Game) mountAt(options string) error {
	prevWd, err := util.Getwd()
	if err != nil {
		return &errs.FileErrorWrap{Op: "getwd", Path: ".", Err: err}
	}
	if err := util.Chdir("/"); err != nil {
		return &errs.FileErrorWrap{Op: "chdir", Path: "/", Err: err}
	}

	mountErr := g.Helper.Mount(context.Background(), g.ID, options, g.Layout.OriginalPath)

	if err := util.Chdir(prevWd); err != nil {
		g.Logger.Warn("%s: failed to restore working directory %s: %v", g.ID, prevWd, err)
	}

	return mountErr
}
