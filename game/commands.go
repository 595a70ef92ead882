package game

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"modoverlay/command"
)

// runCommands invokes each command in order, recording a PID marker under
// runtime_dir for every one that returns a live handle instead of waiting
// (spec.md §4.7). These markers are the only record Deactivate uses to
// terminate background children later.
func (g *Game) runCommands(cmds []*command.Command) {
	var running []*os.Process

	for _, c := range cmds {
		proc, err := c.Run()
		if err != nil {
			g.Logger.Error("%s: command %q failed: %v", g.ID, c.ID, err)
		} else if proc != nil {
			running = append(running, proc)
		}

		if c.DelayAfter > 0 {
			time.Sleep(c.DelayAfter)
		}
	}

	if len(running) == 0 {
		return
	}

	if err := os.MkdirAll(g.Layout.RuntimeDir, 0755); err != nil {
		g.Logger.Error("%s: failed to create runtime dir %s: %v", g.ID, g.Layout.RuntimeDir, err)
		return
	}

	for _, p := range running {
		marker := filepath.Join(g.Layout.RuntimeDir, strconv.Itoa(p.Pid))
		if err := os.WriteFile(marker, nil, 0644); err != nil {
			g.Logger.Error("%s: failed to write pid marker %s: %v", g.ID, marker, err)
		}
	}
}
