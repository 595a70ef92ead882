// Package config parses a per-game TOML configuration file into a typed
// GameConfig view, and exposes on-demand decoding of its nested [<name>]
// tables into SetSpec or CommandSpec, the way the resolver needs them.
//
// Unknown keys are ignored, following spec.md §6: the decoder only reads
// the keys it understands from the raw document and leaves the rest alone.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"modoverlay/errs"
)

// GameConfig is the typed projection of a per-game TOML file (spec.md §3).
type GameConfig struct {
	Path          string
	Active        string
	ModRootPath   string
	Writable      bool
	RunPreCommand bool

	// GlobalPreCommands is the top-level [[pre_command]] array.
	GlobalPreCommands []CommandSpec

	// raw is the full decoded document, kept around so the resolver can
	// look up arbitrary [<setName>] / [<commandName>] tables by name.
	raw map[string]interface{}
}

// SetSpec is the config-level shape of a mod set (spec.md §3).
type SetSpec struct {
	Mods          []string
	Writable      bool
	RunPreCommand bool
	Command       string // optional name of a [<commandName>] table
	Environment   map[string]string
}

// CommandSpec is the config-level shape of a pre/custom command (spec.md §3).
type CommandSpec struct {
	Command     []string
	WaitForExit bool
	DelayAfter  int
	Environment map[string]string
}

// Load reads and decodes the TOML file at path.
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.FileErrorWrap{Op: "read config", Path: path, Err: err}
	}

	raw := map[string]interface{}{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, &errs.ValueError{Key: "(document)", Reason: err.Error()}
	}

	gameConfigPath, ok := raw["path"].(string)
	if !ok || gameConfigPath == "" {
		return nil, &errs.KeyMissingError{Key: "path"}
	}

	gc := &GameConfig{
		Path:        gameConfigPath,
		Active:      asString(raw["active"]),
		ModRootPath: asString(raw["mod_root_path"]),
		Writable:    asBool(raw["writable"]),
		raw:         raw,
	}

	// run_pre_command / run_pre_commands synonym (spec.md §9 Open Questions):
	// run_pre_command wins when both are present.
	if _, present := raw["run_pre_command"]; present {
		gc.RunPreCommand = asBool(raw["run_pre_command"])
	} else if _, present := raw["run_pre_commands"]; present {
		gc.RunPreCommand = asBool(raw["run_pre_commands"])
	}

	if rawList, present := raw["pre_command"]; present {
		list, ok := rawList.([]map[string]interface{})
		if !ok {
			if items, ok := rawList.([]interface{}); ok {
				for _, item := range items {
					if m, ok := item.(map[string]interface{}); ok {
						list = append(list, m)
					}
				}
			}
		}
		for i, entry := range list {
			cs, err := decodeCommandSpec(entry, fmt.Sprintf("pre_command[%d]", i))
			if err != nil {
				return nil, err
			}
			gc.GlobalPreCommands = append(gc.GlobalPreCommands, *cs)
		}
	}

	return gc, nil
}

// Table returns the raw decoded contents of a top-level [<name>] table,
// or ok=false if no such table exists.
func (gc *GameConfig) Table(name string) (map[string]interface{}, bool) {
	v, found := gc.raw[name]
	if !found {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

// ParseSetSpec decodes the [<name>] table as a SetSpec.
func (gc *GameConfig) ParseSetSpec(name string) (*SetSpec, error) {
	table, ok := gc.Table(name)
	if !ok {
		return nil, &errs.KeyMissingError{Key: name}
	}

	rawMods, ok := table["mods"]
	if !ok {
		return nil, &errs.KeyMissingError{Key: "mods", Table: name}
	}

	modsSlice, ok := rawMods.([]interface{})
	if !ok {
		return nil, &errs.ValueError{Key: "mods", Table: name, Reason: "must be an array"}
	}
	if len(modsSlice) == 0 {
		return nil, &errs.ArrayEmptyError{Key: "mods", Table: name}
	}

	mods := make([]string, 0, len(modsSlice))
	for _, v := range modsSlice {
		s, ok := v.(string)
		if !ok {
			return nil, &errs.ValueError{Key: "mods", Table: name, Reason: "all elements must be strings"}
		}
		mods = append(mods, s)
	}

	spec := &SetSpec{
		Mods:     mods,
		Writable: asBool(table["writable"]),
		Command:  asString(table["command"]),
	}

	if _, present := table["run_pre_command"]; present {
		spec.RunPreCommand = asBool(table["run_pre_command"])
	} else if _, present := table["run_pre_commands"]; present {
		spec.RunPreCommand = asBool(table["run_pre_commands"])
	}

	if rawEnv, ok := table["environment"].(map[string]interface{}); ok {
		spec.Environment = stringMap(rawEnv)
	}

	return spec, nil
}

// ParseCommandSpec decodes the [<name>] table as a CommandSpec.
func (gc *GameConfig) ParseCommandSpec(name string) (*CommandSpec, error) {
	table, ok := gc.Table(name)
	if !ok {
		return nil, &errs.KeyMissingError{Key: name}
	}
	return decodeCommandSpec(table, name)
}

func decodeCommandSpec(table map[string]interface{}, name string) (*CommandSpec, error) {
	rawCmd, ok := table["command"]
	if !ok {
		return nil, &errs.KeyMissingError{Key: "command", Table: name}
	}

	cmdSlice, ok := rawCmd.([]interface{})
	if !ok {
		return nil, &errs.ValueError{Key: "command", Table: name, Reason: "must be an array"}
	}
	if len(cmdSlice) == 0 {
		return nil, &errs.ArrayEmptyError{Key: "command", Table: name}
	}

	argv := make([]string, 0, len(cmdSlice))
	for _, v := range cmdSlice {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, &errs.ValueError{Key: "command", Table: name, Reason: "all elements must be non-empty strings"}
		}
		argv = append(argv, s)
	}

	cs := &CommandSpec{
		Command:     argv,
		WaitForExit: true,
		DelayAfter:  0,
	}

	if v, present := table["wait_for_exit"]; present {
		cs.WaitForExit = asBool(v)
	}
	if v, present := table["delay_after"]; present {
		cs.DelayAfter = asInt(v)
		if cs.DelayAfter < 0 {
			return nil, &errs.ValueError{Key: "delay_after", Table: name, Reason: "must be non-negative"}
		}
	}
	if rawEnv, ok := table["environment"].(map[string]interface{}); ok {
		cs.Environment = stringMap(rawEnv)
	}

	return cs, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func stringMap(raw map[string]interface{}) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
