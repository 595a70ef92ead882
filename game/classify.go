package game

import (
	"modoverlay/errs"
	"modoverlay/util"
)

// Classify inspects the filesystem and returns the current GameState
// (spec.md §4.6). It is side-effect-free except for one documented case:
// an empty original directory sitting alongside a non-empty moved-aside
// directory is removed as cleanup before reporting MOVED.
func (g *Game) Classify() (GameState, string, error) {
	origExists := util.FileExists(g.Layout.OriginalPath)
	movedExists := util.FileExists(g.Layout.MovedPath)

	var origMounted bool
	if origExists {
		mounted, err := g.Probe(g.Layout.OriginalPath)
		if err != nil {
			return StateInvalid, "", err
		}
		origMounted = mounted
	}

	var origEmpty, movedEmpty bool
	if origExists {
		origEmpty = util.DirEmpty(g.Layout.OriginalPath)
	}
	if movedExists {
		movedEmpty = util.DirEmpty(g.Layout.MovedPath)
	}

	switch {
	case !origExists && !movedExists:
		return StateInvalid, "both original and moved-aside paths are absent", nil

	case !origExists && movedExists && movedEmpty:
		return StateInvalid, "original path is absent and moved-aside path is empty", nil

	case !origExists && movedExists && !movedEmpty:
		return StateMoved, "", nil

	case origExists && origMounted && !movedExists:
		return StateInvalid, "original path is a mountpoint but moved-aside path is absent", nil

	case origExists && origMounted && movedExists && movedEmpty:
		return StateInvalid, "original path is a mountpoint but moved-aside path is empty", nil

	case origExists && origMounted && movedExists && !movedEmpty:
		return StateMounted, "", nil

	case origExists && !origMounted && origEmpty && !movedExists:
		return StateInvalid, "original path is empty and moved-aside path is absent", nil

	case origExists && !origMounted && origEmpty && movedExists && movedEmpty:
		return StateInvalid, "both original and moved-aside paths are empty", nil

	case origExists && !origMounted && origEmpty && movedExists && !movedEmpty:
		if err := util.RemoveAll(g.Layout.OriginalPath); err != nil {
			return StateInvalid, "", &errs.FileErrorWrap{Op: "remove empty original", Path: g.Layout.OriginalPath, Err: err}
		}
		return StateMoved, "", nil

	case origExists && !origMounted && !origEmpty && !movedExists:
		return StateNormal, "", nil

	case origExists && !origMounted && !origEmpty && movedExists && movedEmpty:
		return StateNormal, "", nil

	case origExists && !origMounted && !origEmpty && movedExists && !movedEmpty:
		return StateInvalid, "both original and moved-aside paths are non-empty", nil
	}

	return StateInvalid, "unclassified filesystem layout", nil
}
