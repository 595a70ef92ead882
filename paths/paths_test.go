package paths

import (
	"path/filepath"
	"testing"
)

func TestResolveLayout(t *testing.T) {
	base := Base{
		ConfigHome: "/home/u/.config",
		DataHome:   "/home/u/.local/share",
		CacheHome:  "/home/u/.cache",
		RuntimeDir: "/run/user/1000",
	}

	l := ResolveLayout(base, "skyrim", "/games/skyrim")

	if l.MovedPath != "/games/skyrim_mod-manager" {
		t.Errorf("MovedPath = %q", l.MovedPath)
	}
	if l.DefaultModRoot != filepath.Join(base.DataHome, "mod-manager", "skyrim") {
		t.Errorf("DefaultModRoot = %q", l.DefaultModRoot)
	}
	if l.CacheDir != filepath.Join(base.CacheHome, "mod-manager", "skyrim") {
		t.Errorf("CacheDir = %q", l.CacheDir)
	}
	if l.DummyEmptyDir != filepath.Join(l.CacheDir, "mod-manager_empty_dummy") {
		t.Errorf("DummyEmptyDir = %q", l.DummyEmptyDir)
	}
}

func TestUpperDirFor(t *testing.T) {
	l := ResolveLayout(Base{CacheHome: "/cache"}, "g", "/games/g")

	if got := l.UpperDirFor("modded", false); got != filepath.Join(l.CacheDir, "modded_persistent") {
		t.Errorf("set upper dir = %q", got)
	}
	if got := l.UpperDirFor("", false); got != filepath.Join(l.CacheDir, "persistent_modless") {
		t.Errorf("modless upper dir = %q", got)
	}
	if got := l.UpperDirFor("anything", true); got != filepath.Join(l.CacheDir, "persistent_setup") {
		t.Errorf("setup upper dir = %q", got)
	}
}

func TestWorkSubdirs(t *testing.T) {
	l := ResolveLayout(Base{CacheHome: "/cache"}, "g", "/games/g")

	if l.WorkIndexDir() != filepath.Join(l.WorkDir, "index") {
		t.Errorf("WorkIndexDir = %q", l.WorkIndexDir())
	}
	if l.WorkWorkDir() != filepath.Join(l.WorkDir, "work") {
		t.Errorf("WorkWorkDir = %q", l.WorkWorkDir())
	}
}
