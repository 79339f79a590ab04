package config

import (
	"os"
	"path/filepath"
)

// ProjectDirName is the per-repository configuration directory.
const ProjectDirName = ".cz"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/cz/config.yml
// - macOS: ~/Library/Application Support/cz/config.yml
// - Windows: %APPDATA%\cz\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cz"), nil
}

// ProjectConfigPath returns the path to the project-level config file of the
// repository at projectDir ("" for the current directory).
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(ProjectConfigDir(projectDir), "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir(projectDir string) string {
	return filepath.Join(projectDir, ProjectDirName)
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON config file.
func LegacyProjectConfigPath(projectDir string) string {
	return filepath.Join(ProjectConfigDir(projectDir), "config.json")
}
