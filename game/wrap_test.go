package game_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"modoverlay/command"
	"modoverlay/game"
)

func TestWrap_ActivatesRunsThenDeactivates(t *testing.T) {
	fx := newTestGame(t, `
[s]
mods = ["m"]
`, "m")

	marker := filepath.Join(fx.Root, "wrap-ran")
	cmd := command.Wrap([]string{"/usr/bin/touch", marker})

	if err := fx.Game.Wrap(game.ActivateOptions{SetName: "s"}, cmd); err != nil {
		t.Fatalf("Wrap: %v", err)
	}

	state, _, err := fx.Game.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if state != game.StateNormal {
		t.Errorf("state after Wrap = %v, want NORMAL", state)
	}
	if fx.Helper.mountCalls != 1 || fx.Helper.umountCalls != 1 {
		t.Errorf("mountCalls=%d umountCalls=%d, want 1 and 1", fx.Helper.mountCalls, fx.Helper.umountCalls)
	}
}

func TestSetup_PromotesUpperDirToNewMod(t *testing.T) {
	fx := newTestGame(t, "")

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	origStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = origStdin }()

	done := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		w.WriteString("\n")
		w.Close()
		close(done)
	}()

	if err := fx.Game.Setup("newmod"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	<-done

	target := filepath.Join(fx.Root, "mods", "newmod")
	if _, err := os.Stat(target); err != nil {
		t.Errorf("expected promoted mod directory at %s: %v", target, err)
	}

	state, _, cerr := fx.Game.Classify()
	if cerr != nil {
		t.Fatalf("Classify: %v", cerr)
	}
	if state != game.StateNormal {
		t.Errorf("state after Setup = %v, want NORMAL", state)
	}
}

func TestSetup_RejectsExistingModID(t *testing.T) {
	fx := newTestGame(t, "", "existing")

	if err := fx.Game.Setup("existing"); err == nil {
		t.Fatal("expected Setup to reject an already-existing mod id")
	}
}
