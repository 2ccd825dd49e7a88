package util

import (
	"fmt"
	"os"
)

// FileExists reports whether path exists (file or directory)
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MkdirAll creates every given directory with 0755 permissions
func MkdirAll(paths ...string) error {
	for _, p := range paths {
		if err := os.MkdirAll(p, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", p, err)
		}
	}
	return nil
}

// RemoveQuietly removes path and reports the error only if the path still exists.
// A path that was already gone is not an error.
func RemoveQuietly(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
