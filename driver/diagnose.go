package driver

import "modoverlay/game"

// DiagnosisEntry reports one game whose on-disk layout is not NORMAL, or
// whose config/classification could not be evaluated at all.
type DiagnosisEntry struct {
	GameID string
	State  game.GameState
	Reason string
	Err    error
}

// Diagnose classifies every configured game and reports any that are not
// NORMAL: a MOVED or MOUNTED game left over from an earlier crash, an
// INVALID layout needing manual attention, or a construction/classify
// failure. It performs no transition: the only change it can cause is
// Classify's own cleanup of an empty original directory beside a non-empty
// moved-aside one. Recovery still goes through the normal
// activate/deactivate transitions on the next explicit command.
func (d *Driver) Diagnose() ([]DiagnosisEntry, error) {
	ids, err := d.AllGameIDs()
	if err != nil {
		return nil, err
	}

	var out []DiagnosisEntry
	for _, id := range ids {
		g, err := d.LoadGame(id)
		if err != nil {
			out = append(out, DiagnosisEntry{GameID: id, Err: err})
			continue
		}

		state, reason, err := g.Classify()
		if err != nil {
			out = append(out, DiagnosisEntry{GameID: id, Err: err})
			continue
		}
		if state != game.StateNormal {
			out = append(out, DiagnosisEntry{GameID: id, State: state, Reason: reason})
		}
	}

	return out, nil
}
