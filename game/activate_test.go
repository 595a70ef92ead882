package game_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modoverlay/game"
)

func TestActivate_NormalToMounted(t *testing.T) {
	fx := newTestGame(t, `
active = "s"

[s]
mods = ["m"]
`, "m")

	if err := fx.Game.Activate(game.ActivateOptions{SetName: "s"}); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	state, _, err := fx.Game.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if state != game.StateMounted {
		t.Fatalf("state = %v, want MOUNTED", state)
	}

	options := fx.Helper.optionsFor("testgame")
	if !strings.Contains(options, "lowerdir=") {
		t.Errorf("options missing lowerdir: %q", options)
	}
	wantLower := filepath.Join(fx.Root, "mods", "m") + ":" + fx.Layout.MovedPath
	if !strings.Contains(options, wantLower) {
		t.Errorf("options = %q, want lowerdir containing %q", options, wantLower)
	}
	if strings.Contains(options, "upperdir=") {
		t.Errorf("non-writable set should not produce an upperdir: %q", options)
	}
}

func TestActivate_EmptySetProducesTwoLowerLayersWithDummy(t *testing.T) {
	fx := newTestGame(t, "")

	if err := fx.Game.Activate(game.ActivateOptions{SetName: ""}); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	options := fx.Helper.optionsFor("testgame")
	want := "lowerdir=" + fx.Layout.MovedPath + ":" + fx.Layout.DummyEmptyDir
	if !strings.Contains(options, want) {
		t.Errorf("options = %q, want containing %q", options, want)
	}
	if strings.Contains(options, "upperdir=") {
		t.Error("ignore_overlays mode should not be writable by default")
	}
}

func TestActivate_NestedWritableSetCreatesUpperdir(t *testing.T) {
	fx := newTestGame(t, `
[top]
mods = ["n"]
writable = false

[n]
mods = ["m"]
writable = true
`, "m")

	if err := fx.Game.Activate(game.ActivateOptions{SetName: "top"}); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	options := fx.Helper.optionsFor("testgame")
	if !strings.Contains(options, "upperdir=") || !strings.Contains(options, "workdir=") {
		t.Errorf("expected writable mount options, got %q", options)
	}
	if fx.Helper.cleanCalls != 1 {
		t.Errorf("cleanCalls = %d, want 1", fx.Helper.cleanCalls)
	}

	upperDir := fx.Layout.UpperDirFor("top", false)
	if _, err := os.Stat(upperDir); err != nil {
		t.Errorf("expected upper dir to exist: %v", err)
	}
	if _, err := os.Stat(fx.Layout.WorkIndexDir()); err != nil {
		t.Errorf("expected work/index to exist: %v", err)
	}
}

func TestActivate_ReactivateRemountsWithNewSet(t *testing.T) {
	fx := newTestGame(t, `
[s1]
mods = ["a"]

[s2]
mods = ["b"]
`, "a", "b")

	if err := fx.Game.Activate(game.ActivateOptions{SetName: "s1"}); err != nil {
		t.Fatalf("first Activate: %v", err)
	}
	if err := fx.Game.Activate(game.ActivateOptions{SetName: "s2"}); err != nil {
		t.Fatalf("second Activate: %v", err)
	}

	state, _, err := fx.Game.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if state != game.StateMounted {
		t.Fatalf("state = %v, want MOUNTED", state)
	}

	options := fx.Helper.optionsFor("testgame")
	if !strings.Contains(options, filepath.Join(fx.Root, "mods", "b")) {
		t.Errorf("expected re-mount to use set s2's lower dir, got %q", options)
	}
	if fx.Helper.umountCalls != 1 {
		t.Errorf("umountCalls = %d, want 1 (re-activate must unmount first)", fx.Helper.umountCalls)
	}
}

func TestActivate_CrashRecoveryFromMoved(t *testing.T) {
	fx := newTestGame(t, `
[s]
mods = ["m"]
`, "m")

	// Simulate a crash between rename and mount: original absent, moved
	// present and non-empty.
	if err := os.RemoveAll(fx.Layout.OriginalPath); err != nil {
		t.Fatalf("remove original: %v", err)
	}
	if err := os.MkdirAll(fx.Layout.MovedPath, 0755); err != nil {
		t.Fatalf("mkdir moved: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fx.Layout.MovedPath, "game.bin"), []byte("x"), 0644); err != nil {
		t.Fatalf("seed moved: %v", err)
	}

	state, _, err := fx.Game.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if state != game.StateMoved {
		t.Fatalf("state = %v, want MOVED (pre-activate)", state)
	}

	if err := fx.Game.Activate(game.ActivateOptions{SetName: "s"}); err != nil {
		t.Fatalf("Activate from MOVED: %v", err)
	}

	state, _, err = fx.Game.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if state != game.StateMounted {
		t.Fatalf("state = %v, want MOUNTED", state)
	}

	if err := fx.Game.Deactivate(); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	state, _, err = fx.Game.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if state != game.StateNormal {
		t.Errorf("state after deactivate = %v, want NORMAL", state)
	}
}

func TestActivate_InvalidMountRollsBackViaDeactivate(t *testing.T) {
	fx := newTestGame(t, `
[s]
mods = ["missing-mod"]
`)

	err := fx.Game.Activate(game.ActivateOptions{SetName: "s"})
	if err == nil {
		t.Fatal("expected Activate to fail for a missing mod folder")
	}

	// Resolver failure happens after the rename-aside step, so recovery
	// must have restored NORMAL rather than leaving the game MOVED.
	state, _, cerr := fx.Game.Classify()
	if cerr != nil {
		t.Fatalf("Classify: %v", cerr)
	}
	if state != game.StateNormal {
		t.Errorf("state after failed activate = %v, want NORMAL (recovered)", state)
	}
}
