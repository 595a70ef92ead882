package command

import (
	"testing"
	"time"

	"modoverlay/config"
)

func TestFromSpec(t *testing.T) {
	spec := &config.CommandSpec{
		Command:     []string{"/bin/echo", "hi"},
		WaitForExit: false,
		DelayAfter:  5,
		Environment: map[string]string{"FOO": "bar"},
	}

	c := FromSpec("launch", spec)

	if c.ID != "launch" {
		t.Errorf("ID = %q", c.ID)
	}
	if c.WaitForExit {
		t.Error("WaitForExit should be false")
	}
	if c.DelayAfter != 5*time.Second {
		t.Errorf("DelayAfter = %v", c.DelayAfter)
	}
	if c.Env["FOO"] != "bar" {
		t.Errorf("Env[FOO] = %q", c.Env["FOO"])
	}
}

func TestRun_WaitForExit(t *testing.T) {
	c := &Command{ID: "t", Argv: []string{"/bin/true"}, WaitForExit: true}

	proc, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if proc != nil {
		t.Error("expected nil process handle when WaitForExit is true")
	}
}

func TestRun_NoWait(t *testing.T) {
	c := &Command{ID: "t", Argv: []string{"/bin/sleep", "0.05"}, WaitForExit: false}

	proc, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if proc == nil {
		t.Fatal("expected a live process handle")
	}
	proc.Wait()
}

func TestRun_EmptyArgv(t *testing.T) {
	c := &Command{ID: "t"}
	if _, err := c.Run(); err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestRun_ExitFailurePropagates(t *testing.T) {
	c := &Command{ID: "t", Argv: []string{"/bin/false"}, WaitForExit: true}
	if _, err := c.Run(); err == nil {
		t.Fatal("expected non-nil error for a failing command")
	}
}

func TestWrap(t *testing.T) {
	c := Wrap([]string{"/usr/bin/game", "--flag"})
	if c.ID != "wrap" {
		t.Errorf("ID = %q", c.ID)
	}
	if !c.WaitForExit {
		t.Error("wrap command should wait for exit")
	}
}
