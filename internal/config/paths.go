package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "UVVIS_CONFIG"
	// FileName is the config file name looked up in the working directory
	// and written by the setup tool.
	FileName = "uvvis-mock.yaml"
	// DirName is the config directory name under XDG.
	DirName = "uvvis"
)

// FindConfigPath searches for a config file in priority order and returns
// an empty string if none exists.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(FileName) {
		if abs, err := filepath.Abs(FileName); err == nil {
			return abs
		}
		return FileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, DirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", DirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
