// Package util collects the filesystem predicates the activation state
// machine needs to classify on-disk layout: existence, emptiness, and the
// chdir dance needed to keep the process's own cwd from holding a
// mountpoint open during mount/unmount.
package util

import (
	"os"
)

// FileExists reports whether path exists (regardless of type).
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// DirEmpty reports whether path is a directory with no entries. Callers
// check DirExists first when the distinction between absent and empty
// matters, since DirEmpty returns false for both a nonexistent path and a
// non-empty one.
func DirEmpty(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return err != nil
}

// RemoveAll removes a directory tree.
func RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Getwd gets the current working directory.
func Getwd() (string, error) {
	return os.Getwd()
}

// Chdir changes the current directory.
func Chdir(dir string) error {
	return os.Chdir(dir)
}
