// ABOUTME: Standard filesystem paths for panechat configuration and logs
// ABOUTME: Resolves ~/.panechat/ for global and .panechat/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".panechat"
	projectDirName = ".panechat"
)

// GlobalDir returns the user-global config directory (~/.panechat/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.panechat/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.yaml")
}

// GlobalKeybindingsFile returns the path to the global keybindings file.
func GlobalKeybindingsFile() string {
	return filepath.Join(GlobalDir(), "keybindings.yaml")
}

// ProjectKeybindingsFile returns the path to the project keybindings file.
func ProjectKeybindingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "keybindings.yaml")
}

// ThemesDir returns the directory searched for user theme files.
func ThemesDir() string {
	return filepath.Join(GlobalDir(), "themes")
}

// DefaultLogFile returns the log path used when none is configured.
func DefaultLogFile() string {
	return filepath.Join(GlobalDir(), "logs", "panechat.log")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
