// Package modset resolves a named mod set from a game's configuration
// into a tree of leaf mod folders and nested sets, detecting cycles by
// walking the current resolution path as an ancestor list rather than
// relying on any language-level recursion limit (spec.md §9).
package modset

import (
	"os"
	"path/filepath"

	"modoverlay/command"
	"modoverlay/config"
	"modoverlay/errs"
)

// MemberKind distinguishes a leaf mod folder from a nested set reference.
type MemberKind int

const (
	MemberLeaf MemberKind = iota
	MemberNested
)

// Member is one entry of a ModSet's ordered mod list.
type Member struct {
	Kind MemberKind

	// Name is the declared string (the mod folder name, or the nested
	// set's identifier) regardless of Kind.
	Name string

	// LeafPath is modRoot/Name, populated only when Kind == MemberLeaf.
	LeafPath string

	// Nested is the resolved subtree, populated only when Kind == MemberNested.
	Nested *ModSet
}

// ModSet is a resolved, named mod set: an ordered member list plus the
// flags and command declared directly on it (spec.md §3).
type ModSet struct {
	Name    string
	Members []Member

	// ownWritable and ownRunPreCommand are this set's own flags, before
	// folding in nested sets. Use Writable()/ShouldRunPreCommands() for
	// the upward-propagated (OR-folded) value.
	ownWritable      bool
	ownRunPreCommand bool

	// Command is the set's own attached command, if "command" was set.
	Command *command.Command

	// Environment is the set's reserved environment map, exposed as-is on
	// the resolved set. Nothing here or in the game package merges it into
	// any command's environment (spec.md §9 Open Questions).
	Environment map[string]string
}

// Resolve builds the ModSet tree rooted at setName (spec.md §4.4).
func Resolve(setName string, gc *config.GameConfig, modRoot string) (*ModSet, error) {
	return resolve(setName, gc, modRoot, nil)
}

func resolve(setName string, gc *config.GameConfig, modRoot string, ancestry []string) (*ModSet, error) {
	for _, a := range ancestry {
		if a == setName {
			return nil, &errs.RecursionError{SetName: setName, Ancestry: ancestry}
		}
	}

	spec, err := gc.ParseSetSpec(setName)
	if err != nil {
		return nil, err
	}

	ms := &ModSet{
		Name:             setName,
		ownWritable:      spec.Writable,
		ownRunPreCommand: spec.RunPreCommand,
		Environment:      spec.Environment,
	}

	childAncestry := append(append([]string{}, ancestry...), setName)

	for _, name := range spec.Mods {
		if _, isTable := gc.Table(name); isTable {
			nested, err := resolve(name, gc, modRoot, childAncestry)
			if err != nil {
				return nil, err
			}
			ms.Members = append(ms.Members, Member{Kind: MemberNested, Name: name, Nested: nested})
			continue
		}

		leafPath := filepath.Join(modRoot, name)
		info, statErr := os.Stat(leafPath)
		if statErr != nil || !info.IsDir() {
			return nil, &errs.FolderMissingError{ModName: name, Path: leafPath}
		}
		ms.Members = append(ms.Members, Member{Kind: MemberLeaf, Name: name, LeafPath: leafPath})
	}

	if spec.Command != "" {
		cs, err := gc.ParseCommandSpec(spec.Command)
		if err != nil {
			return nil, err
		}
		ms.Command = command.FromSpec(spec.Command, cs)
	}

	return ms, nil
}

// Writable reports whether this set or any transitively nested set is
// writable (own flag OR-folded over the subtree, spec.md §3 invariants).
func (ms *ModSet) Writable() bool {
	if ms.ownWritable {
		return true
	}
	for _, m := range ms.Members {
		if m.Kind == MemberNested && m.Nested.Writable() {
			return true
		}
	}
	return false
}

// ShouldRunPreCommands reports whether this set or any transitively
// nested set requests pre-command execution.
func (ms *ModSet) ShouldRunPreCommands() bool {
	if ms.ownRunPreCommand {
		return true
	}
	for _, m := range ms.Members {
		if m.Kind == MemberNested && m.Nested.ShouldRunPreCommands() {
			return true
		}
	}
	return false
}

// Commands returns every command attached anywhere in the subtree,
// deduplicated by id, in DFS declaration order.
func (ms *ModSet) Commands() []*command.Command {
	seen := make(map[string]bool)
	var out []*command.Command

	var walk func(*ModSet)
	walk = func(s *ModSet) {
		if s.Command != nil && !seen[s.Command.ID] {
			seen[s.Command.ID] = true
			out = append(out, s.Command)
		}
		for _, m := range s.Members {
			if m.Kind == MemberNested {
				walk(m.Nested)
			}
		}
	}
	walk(ms)

	return out
}

// BuildLowerList returns the ordered, deduplicated (first occurrence kept)
// list of absolute leaf mod paths, with nested sets spliced in place at
// declaration order (spec.md §4.4). Earlier entries are higher priority.
func (ms *ModSet) BuildLowerList() []string {
	seen := make(map[string]bool)
	var order []string

	var walk func(*ModSet)
	walk = func(s *ModSet) {
		for _, m := range s.Members {
			if m.Kind == MemberLeaf {
				if !seen[m.LeafPath] {
					seen[m.LeafPath] = true
					order = append(order, m.LeafPath)
				}
				continue
			}
			walk(m.Nested)
		}
	}
	walk(ms)

	return order
}
