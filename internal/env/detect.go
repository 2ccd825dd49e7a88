package env

import (
	"os/exec"
)

// ToolDetector provides generic command detection
type ToolDetector struct {
	lookPath func(string) (string, error)
}

// NewToolDetector creates a new tool detector backed by exec.LookPath
func NewToolDetector() *ToolDetector {
	return &ToolDetector{lookPath: exec.LookPath}
}

// IsInstalled checks if a command is available in PATH
func (t *ToolDetector) IsInstalled(command string) bool {
	_, err := t.lookPath(command)
	return err == nil
}
