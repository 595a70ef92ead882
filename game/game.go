// Package game implements the activation state machine: classifying the
// on-disk layout of a single game directory, and driving it through
// activate/deactivate/wrap/setup transitions by moving the original
// directory aside and mounting an overlay in its place.
//
// GameState is never persisted; every operation starts by reconstructing
// it from the filesystem, so a killed process always leaves behind a
// state the next invocation can recover from.
package game

import (
	"time"

	"modoverlay/config"
	"modoverlay/helper"
	"modoverlay/log"
	"modoverlay/mountprobe"
	"modoverlay/paths"
)

// settlingDelay is the empirical pause after unmount and after wrapped
// execution that lets the kernel and child processes finish tearing down
// before the next filesystem operation. Do not remove.
const settlingDelay = 2 * time.Second

// GameState is the classification of a game's current on-disk layout.
type GameState int

const (
	StateNormal GameState = iota
	StateMoved
	StateMounted
	StateInvalid
)

func (s GameState) String() string {
	switch s {
	case StateNormal:
		return "NORMAL"
	case StateMoved:
		return "MOVED"
	case StateMounted:
		return "MOUNTED"
	default:
		return "INVALID"
	}
}

// ProbeFunc answers whether path is currently a mountpoint. Games default
// to mountprobe.IsMountpoint; tests inject a stub.
type ProbeFunc func(path string) (bool, error)

// Game wraps one parsed configuration, its derived path layout, the
// privileged helper, and a mountpoint probe, and drives the activation
// state machine for a single game ID.
type Game struct {
	ID     string
	Config *config.GameConfig
	Layout paths.Layout
	Helper helper.Helper
	Logger log.LibraryLogger
	Probe  ProbeFunc
}

// New constructs a Game. If logger is nil, a NoOpLogger is used. If probe
// is nil, mountprobe.IsMountpoint is used.
func New(id string, cfg *config.GameConfig, layout paths.Layout, h helper.Helper, logger log.LibraryLogger, probe ProbeFunc) *Game {
	if logger == nil {
		logger = log.NoOpLogger{}
	}
	if probe == nil {
		probe = mountprobe.IsMountpoint
	}
	return &Game{ID: id, Config: cfg, Layout: layout, Helper: h, Logger: logger, Probe: probe}
}

// ActivateOptions parameterizes Activate and Wrap: which set to mount
// (empty means ignore_overlays), whether to force a writable mount
// regardless of the set's own flag, and whether this is the interactive
// setup flow (which always forces writable and uses a dedicated upper
// directory).
type ActivateOptions struct {
	SetName  string
	Writable bool
	IsSetup  bool
}
