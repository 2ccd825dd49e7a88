package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Paths holds the standard on-disk locations used by churnguard
type Paths struct {
	BaseDir string // Base directory for settings and logs ($CHURNGUARD_HOME)
}

// NewPaths creates a new Paths instance
// baseDir: base directory (empty string uses default)
func NewPaths(baseDir string) *Paths {
	if baseDir == "" {
		baseDir = DefaultBaseDir()
	}
	return &Paths{
		BaseDir: baseDir,
	}
}

// DefaultBaseDir returns the default base directory:
// ${CHURNGUARD_HOME:-$HOME/churnguard}
func DefaultBaseDir() string {
	if dir := strings.TrimSpace(os.Getenv("CHURNGUARD_HOME")); dir != "" {
		return dir
	}

	home := os.Getenv("HOME")
	if home == "" {
		// Fallback to user.Current if HOME not set
		if currentUser, err := user.Current(); err == nil {
			home = currentUser.HomeDir
		}
	}

	return filepath.Join(home, "churnguard")
}

// SettingsDir returns the settings directory: $BASE_DIR/settings
func (p *Paths) SettingsDir() string {
	return filepath.Join(p.BaseDir, "settings")
}

// SettingsFile returns the settings file path: $BASE_DIR/settings/settings.yaml
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.SettingsDir(), "settings.yaml")
}

// LogsDir returns the log directory: $BASE_DIR/logs
func (p *Paths) LogsDir() string {
	return filepath.Join(p.BaseDir, "logs")
}

// DefaultLogFile returns the log file used when --log-file is given without a path
func (p *Paths) DefaultLogFile() string {
	return filepath.Join(p.LogsDir(), "churnguard.log")
}
