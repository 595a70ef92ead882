package helper

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"modoverlay/errs"
)

// cleanworkdir exit codes, per spec.md §4.2: the helper binary distinguishes
// these three failure modes on exit rather than folding them into one
// generic error, so callers can tell a busy mount from a precondition
// violation from a plain removal failure.
const (
	exitStillMounted          = 10
	exitPreconditionsViolated = 11
	exitRemovalFailed         = 12
)

// ExecHelper invokes an external, root-only helper binary through a
// configurable elevation command (pkexec, sudo, or doas), the only trusted
// boundary crossed by the rest of this program (spec.md §4.2, §9).
type ExecHelper struct {
	// Elevate is the elevation command prefixed to every invocation, e.g.
	// "pkexec" or "sudo". Empty means invoke HelperPath directly, which is
	// only useful when the caller is already root (tests, system services).
	Elevate string

	// HelperPath is the path to the privileged helper executable.
	HelperPath string
}

// NewExecHelper constructs an ExecHelper. helperPath defaults to
// "/usr/libexec/mod-manager-helper" if empty.
func NewExecHelper(helperPath string) *ExecHelper {
	if helperPath == "" {
		helperPath = "/usr/libexec/mod-manager-helper"
	}
	return &ExecHelper{Elevate: "pkexec", HelperPath: helperPath}
}

func (h *ExecHelper) argv(args ...string) []string {
	full := append([]string{h.HelperPath}, args...)
	if h.Elevate == "" {
		return full
	}
	return append([]string{h.Elevate}, full...)
}

func (h *ExecHelper) run(ctx context.Context, args ...string) error {
	argv := h.argv(args...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &errs.StateInvalidError{
			Reason: fmt.Sprintf("helper invocation %v failed: %v: %s", args, err, stderr.String()),
		}
	}
	return nil
}

// Mount invokes "mount <overlayID> <options> <target>".
func (h *ExecHelper) Mount(ctx context.Context, overlayID, options, target string) error {
	return h.run(ctx, "mount", overlayID, options, target)
}

// Umount invokes "umount <overlayID>".
func (h *ExecHelper) Umount(ctx context.Context, overlayID string) error {
	return h.run(ctx, "umount", overlayID)
}

// CleanWorkdir invokes "cleanworkdir <overlayID> <workdir>", mapping the
// helper's documented exit codes to distinct error reasons.
func (h *ExecHelper) CleanWorkdir(ctx context.Context, overlayID, workdir string) error {
	argv := h.argv("cleanworkdir", overlayID, workdir)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return &errs.StateInvalidError{
			GameID: overlayID,
			Reason: fmt.Sprintf("cleanworkdir invocation failed: %v: %s", err, stderr.String()),
		}
	}

	switch exitErr.ExitCode() {
	case exitStillMounted:
		return &errs.StateInvalidError{GameID: overlayID, Reason: "cleanworkdir: overlay is still mounted"}
	case exitPreconditionsViolated:
		return &errs.StateInvalidError{GameID: overlayID, Reason: "cleanworkdir: workdir preconditions violated"}
	case exitRemovalFailed:
		return &errs.StateInvalidError{GameID: overlayID, Reason: fmt.Sprintf("cleanworkdir: removal failed: %s", stderr.String())}
	default:
		return &errs.StateInvalidError{
			GameID: overlayID,
			Reason: fmt.Sprintf("cleanworkdir exited %d: %s", exitErr.ExitCode(), stderr.String()),
		}
	}
}
