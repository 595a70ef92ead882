// Package helper abstracts the privileged, root-only operations the game
// activation state machine needs — mount, unmount, and workdir cleanup —
// behind a narrow interface, the only trusted boundary in the system
// (spec.md §4.2, §9). A registry of named backends lets the real
// implementation (an external helper binary run through an elevation
// mechanism) and a mock (for tests that cannot mount anything) share one
// call site, the way the teacher's environment package registers "bsd"
// and "mock" backends.
package helper

import (
	"context"
	"fmt"
)

// Helper is the privileged-helper contract. Every method is keyed by a
// stable overlay identifier — the game ID.
type Helper interface {
	// Mount performs an overlay mount at target using options, which
	// must contain lowerdir=... and may contain upperdir=...,workdir=....
	Mount(ctx context.Context, overlayID, options, target string) error

	// Umount unmounts the overlay previously mounted for overlayID.
	Umount(ctx context.Context, overlayID string) error

	// CleanWorkdir removes workdir's index/ and work/ subdirectories.
	// The helper itself enforces the preconditions in spec.md §4.2:
	// overlayID must not currently be mounted, workdir must be named
	// "workdir", its parent's basename must equal overlayID, and it must
	// contain exactly {index, work} or be empty.
	CleanWorkdir(ctx context.Context, overlayID, workdir string) error
}

// NewFunc constructs a Helper implementation.
type NewFunc func() Helper

var backends = make(map[string]NewFunc)

// Register registers a named Helper backend. Panics if name is already
// registered, since that is always a programming error.
func Register(name string, fn NewFunc) {
	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("helper backend already registered: %s", name))
	}
	backends[name] = fn
}

// New constructs the named backend.
func New(name string) (Helper, error) {
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown helper backend: %s", name)
	}
	return fn(), nil
}

func init() {
	Register("exec", func() Helper { return NewExecHelper("") })
	Register("mock", func() Helper { return NewMockHelper() })
}
