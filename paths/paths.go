// Package paths resolves the filesystem locations the mod manager reads
// and writes, derived once per invocation from the standard user base
// directories and never persisted.
package paths

import (
	"os"
	"path/filepath"
	"strconv"
)

const programName = "mod-manager"

// Base holds the four XDG base directories, captured once at startup.
type Base struct {
	ConfigHome string
	DataHome   string
	CacheHome  string
	RuntimeDir string
}

// ResolveBase reads the XDG_* environment variables (falling back to the
// usual dotfiles under $HOME, and /run/user/<uid> for the runtime dir).
func ResolveBase() (Base, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Base{}, err
	}

	b := Base{
		ConfigHome: os.Getenv("XDG_CONFIG_HOME"),
		DataHome:   os.Getenv("XDG_DATA_HOME"),
		CacheHome:  os.Getenv("XDG_CACHE_HOME"),
		RuntimeDir: os.Getenv("XDG_RUNTIME_DIR"),
	}

	if b.ConfigHome == "" {
		b.ConfigHome = filepath.Join(home, ".config")
	}
	if b.DataHome == "" {
		b.DataHome = filepath.Join(home, ".local", "share")
	}
	if b.CacheHome == "" {
		b.CacheHome = filepath.Join(home, ".cache")
	}
	if b.RuntimeDir == "" {
		b.RuntimeDir = filepath.Join("/run", "user", strconv.Itoa(os.Getuid()))
	}

	return b, nil
}

// ConfigDir is the directory holding per-game TOML config files.
func (b Base) ConfigDir() string {
	return filepath.Join(b.ConfigHome, programName)
}

// Layout holds every derived, per-game path (spec.md §3).
type Layout struct {
	GameID string

	// OriginalPath is the game's configured install directory.
	OriginalPath string

	// MovedPath is the sibling directory the original is renamed to while
	// an overlay occupies OriginalPath.
	MovedPath string

	// DefaultModRoot is where mod folders are searched when the config
	// does not set mod_root_path explicitly.
	DefaultModRoot string

	CacheDir   string
	RuntimeDir string

	// DummyEmptyDir is the placeholder second lower layer used for a
	// read-only overlay with no mod set, whose only other lower directory
	// is the moved-aside original. Writable mounts do not use it.
	DummyEmptyDir string

	// WorkDir is the overlay scratch directory, with mandated
	// index/ and work/ subdirectories.
	WorkDir string
}

// ResolveLayout derives all per-game paths for gameID from the base
// directories and the game's configured original path.
func ResolveLayout(base Base, gameID, originalPath string) Layout {
	cacheDir := filepath.Join(base.CacheHome, programName, gameID)

	return Layout{
		GameID:         gameID,
		OriginalPath:   originalPath,
		MovedPath:      originalPath + "_" + programName,
		DefaultModRoot: filepath.Join(base.DataHome, programName, gameID),
		CacheDir:       cacheDir,
		RuntimeDir:     filepath.Join(base.RuntimeDir, programName, gameID),
		DummyEmptyDir:  filepath.Join(cacheDir, programName+"_empty_dummy"),
		WorkDir:        filepath.Join(cacheDir, "workdir"),
	}
}

// UpperDirFor returns the cache-relative upper directory for the given
// active set name. An empty setName means no set is active (ignore_overlays
// or the unset-active case); isSetup overrides both for the interactive
// setup flow.
func (l Layout) UpperDirFor(setName string, isSetup bool) string {
	switch {
	case isSetup:
		return filepath.Join(l.CacheDir, "persistent_setup")
	case setName == "":
		return filepath.Join(l.CacheDir, "persistent_modless")
	default:
		return filepath.Join(l.CacheDir, setName+"_persistent")
	}
}

// WorkIndexDir and WorkWorkDir are the two mandated subdirectories of
// Layout.WorkDir, matched to overlayfs's "workdir" requirement of exactly
// those two members.
func (l Layout) WorkIndexDir() string { return filepath.Join(l.WorkDir, "index") }
func (l Layout) WorkWorkDir() string  { return filepath.Join(l.WorkDir, "work") }
