// Package command models a pre/custom command: an argv vector spawned
// verbatim (no shell expansion) with an environment overlay, optionally
// waited on, per spec.md §4.5.
package command

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"modoverlay/config"
)

// Command is a single pre-command or wrap command ready to run.
type Command struct {
	// ID identifies the command: the config key it was declared under,
	// or "wrap" for the ad-hoc command passed to `mod-manager wrap`.
	ID string

	Argv        []string
	WaitForExit bool
	DelayAfter  time.Duration
	Env         map[string]string
}

// FromSpec builds a Command from its config.CommandSpec, tagging it with id.
func FromSpec(id string, spec *config.CommandSpec) *Command {
	return &Command{
		ID:          id,
		Argv:        spec.Command,
		WaitForExit: spec.WaitForExit,
		DelayAfter:  time.Duration(spec.DelayAfter) * time.Second,
		Env:         spec.Environment,
	}
}

// Wrap builds the ad-hoc "wrap" command for `mod-manager wrap ... -- <argv>`.
func Wrap(argv []string) *Command {
	return &Command{
		ID:          "wrap",
		Argv:        argv,
		WaitForExit: true,
	}
}

// Run spawns Argv verbatim with Env overlaid onto the current process
// environment. If WaitForExit, Run blocks until the child exits and
// returns (nil, err): spec.md's "no handle" case. Otherwise it returns the
// live *os.Process immediately so the caller can track it (spec.md §4.7).
func (c *Command) Run() (*os.Process, error) {
	if len(c.Argv) == 0 {
		return nil, fmt.Errorf("command %q: empty argv", c.ID)
	}

	cmd := exec.Command(c.Argv[0], c.Argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = overlayEnv(os.Environ(), c.Env)

	if c.WaitForExit {
		err := cmd.Run()
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Process, nil
}

func overlayEnv(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return base
	}
	env := make([]string, len(base), len(base)+len(overlay))
	copy(env, base)
	for k, v := range overlay {
		env = append(env, k+"="+v)
	}
	return env
}
