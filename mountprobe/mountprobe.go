// Package mountprobe answers one question: is there currently a
// filesystem mounted exactly at a given path (spec.md §4.3).
package mountprobe

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// IsMountpoint reports whether path is currently a mountpoint. A path that
// cannot be stat'ed (for example, one that does not exist) is an error.
//
// On Linux it first consults /proc/self/mountinfo, which distinguishes
// bind mounts of an otherwise identical device from the underlying
// directory. If mountinfo is unavailable (non-Linux, restricted
// environments), it falls back to comparing the device number of path
// against that of its parent directory: a mismatch means something is
// mounted at path, the same device-number idiom used throughout overlay
// and graph-driver code that has no mountinfo to read.
func IsMountpoint(path string) (bool, error) {
	clean := filepath.Clean(path)

	if _, err := os.Stat(clean); err != nil {
		return false, err
	}

	if mounted, ok, err := checkMountinfo(clean); ok {
		return mounted, err
	}

	return checkByDevice(clean)
}

func checkMountinfo(path string) (mounted bool, handled bool, err error) {
	f, openErr := os.Open("/proc/self/mountinfo")
	if openErr != nil {
		return false, false, nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		// mountinfo fields: ... mount-id parent-id major:minor root
		// mount-point ... (fields separated by single spaces; the
		// mount point is the 5th whitespace-separated field).
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		if fields[4] == path {
			return true, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, false, err
	}

	return false, true, nil
}

func checkByDevice(path string) (bool, error) {
	var pathStat unix.Stat_t
	if err := unix.Stat(path, &pathStat); err != nil {
		return false, err
	}

	parentStat := unix.Stat_t{}
	if err := unix.Stat(filepath.Dir(path), &parentStat); err != nil {
		return false, err
	}

	return pathStat.Dev != parentStat.Dev, nil
}
