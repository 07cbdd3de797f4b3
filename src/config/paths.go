package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// StoragePaths contains paths for application storage
type StoragePaths struct {
	DatabasePath string
}

// GetDefaultStoragePaths returns default storage paths using XDG base directories
func GetDefaultStoragePaths() StoragePaths {
	// XDG_STATE_HOME holds runtime state data
	return StoragePaths{
		DatabasePath: filepath.Join(xdg.StateHome, "charchat", "chat.db"),
	}
}

// GetDefaultConfigPath returns the default user config file path
func GetDefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "charchat", "config.json")
}
