// Package paths provides XDG-compliant path resolution for shelf.
//
// Resolution order:
// 1. SHELF_HOME (portable root) → $SHELF_HOME/{config,data,state,cache}
// 2. XDG env vars → $XDG_*_HOME/shelf
// 3. Platform defaults → ~/.config/shelf, ~/.local/share/shelf, etc.
package paths

import (
	"os"
	"path/filepath"
)

func getConfigHome() string {
	if shelfHome := os.Getenv("SHELF_HOME"); shelfHome != "" {
		return filepath.Join(shelfHome, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

func getDataHome() string {
	if shelfHome := os.Getenv("SHELF_HOME"); shelfHome != "" {
		return filepath.Join(shelfHome, "data")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

func getStateHome() string {
	if shelfHome := os.Getenv("SHELF_HOME"); shelfHome != "" {
		return filepath.Join(shelfHome, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the shelf configuration directory, used for shelf.yml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "shelf")
}

// DataDir returns the shelf data directory. A library lives here when no
// project-local .shelf directory exists.
func DataDir() string {
	base := getDataHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "shelf")
}

// StateDir returns the shelf state directory, used for logs and runtime state.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "shelf")
}

// EnsureDirs creates the shelf directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), DataDir(), StateDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
