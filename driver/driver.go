// Package driver enumerates per-game TOML configs under the user's config
// directory and dispatches a single requested action across one or every
// game, isolating construction and action failures per game so one bad
// config never blocks the rest (spec.md §4.8).
package driver

import (
	"fmt"
	"path/filepath"
	"strings"

	"modoverlay/command"
	"modoverlay/config"
	"modoverlay/game"
	"modoverlay/helper"
	"modoverlay/history"
	"modoverlay/log"
	"modoverlay/paths"
)

// Action identifies which Game transition to dispatch.
type Action string

const (
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
	ActionWrap       Action = "wrap"
	ActionSetup      Action = "setup"
)

const reservedConfigName = "config.toml"

// RunOptions parameterizes a dispatched action. SetName is a tri-state:
// nil means "use the game's configured default active set"; a non-nil
// pointer to "" means the caller explicitly requested ignore_overlays
// (spec.md §6, `--set ""`).
type RunOptions struct {
	SetName  *string
	Writable bool
	WrapCmd  *command.Command
	NewModID string
}

// Driver wires together the shared Helper, logger, and optional
// diagnostic history database used to build a Game per config file.
type Driver struct {
	Base    paths.Base
	Helper  helper.Helper
	Logger  log.LibraryLogger
	History *history.DB
}

// New constructs a Driver. hist may be nil to disable activation history.
func New(base paths.Base, h helper.Helper, logger log.LibraryLogger, hist *history.DB) *Driver {
	if logger == nil {
		logger = log.NoOpLogger{}
	}
	return &Driver{Base: base, Helper: h, Logger: logger, History: hist}
}

// AllGameIDs lists every configured game ID under the config directory,
// excluding the reserved config.toml file.
func (d *Driver) AllGameIDs() ([]string, error) {
	pattern := filepath.Join(d.Base.ConfigDir(), "*.toml")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		if base == reservedConfigName {
			continue
		}
		ids = append(ids, strings.TrimSuffix(base, ".toml"))
	}
	return ids, nil
}

// LoadGame parses gameID's config and constructs a Game wired to this
// driver's shared Helper and logger.
func (d *Driver) LoadGame(gameID string) (*game.Game, error) {
	configPath := filepath.Join(d.Base.ConfigDir(), gameID+".toml")
	gc, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	layout := paths.ResolveLayout(d.Base, gameID, gc.Path)
	return game.New(gameID, gc, layout, d.Helper, d.Logger, nil), nil
}

// Run dispatches action to gameID, or to every configured game if gameID
// is empty. Construction failures downgrade to a logged warning and skip
// that game; action failures are logged and collected, and Run reports
// the overall failure count without aborting the remaining games.
func (d *Driver) Run(action Action, gameID string, opts RunOptions) error {
	ids, err := d.resolveTargets(gameID)
	if err != nil {
		return err
	}

	var failed []string
	for _, id := range ids {
		if err := d.runOne(action, id, opts); err != nil {
			failed = append(failed, id)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d game(s) failed: %v", len(failed), len(ids), failed)
	}
	return nil
}

func (d *Driver) resolveTargets(gameID string) ([]string, error) {
	if gameID != "" {
		return []string{gameID}, nil
	}
	return d.AllGameIDs()
}

func (d *Driver) runOne(action Action, gameID string, opts RunOptions) error {
	g, err := d.LoadGame(gameID)
	if err != nil {
		d.Logger.Warn("%s: skipping, construction failed: %v", gameID, err)
		return err
	}

	setName := g.Config.Active
	if opts.SetName != nil {
		setName = *opts.SetName
	}

	var runErr error
	switch action {
	case ActionActivate:
		runErr = g.Activate(game.ActivateOptions{SetName: setName, Writable: opts.Writable})
	case ActionDeactivate:
		runErr = g.Deactivate()
	case ActionWrap:
		runErr = g.Wrap(game.ActivateOptions{SetName: setName, Writable: opts.Writable}, opts.WrapCmd)
	case ActionSetup:
		runErr = g.Setup(opts.NewModID)
	default:
		runErr = fmt.Errorf("unknown action: %s", action)
	}

	if runErr != nil {
		d.Logger.Error("%s: %s failed: %v", gameID, action, runErr)
	}

	if d.History != nil {
		detail := ""
		if runErr != nil {
			detail = runErr.Error()
		}
		if herr := d.History.Record(gameID, history.Entry{
			Action:  history.Action(action),
			SetName: setName,
			Success: runErr == nil,
			Detail:  detail,
		}); herr != nil {
			d.Logger.Warn("%s: failed to record activation history: %v", gameID, herr)
		}
	}

	return runErr
}
