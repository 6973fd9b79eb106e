package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethgrid/catflip/internal/config"
)

// FindConfigFile walks up from startDir looking for .catflip/catflip.toml.
func FindConfigFile(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		path := filepath.Join(dir, config.DirName, config.FileName)
		if _, err := os.Stat(path); err == nil {
			return path, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", false, nil
}

func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, config.DirName, config.FileName)
}

// Resolve picks the config file to load: an explicit path wins, then the
// nearest project file, then the global one. It returns "" when none exist,
// which means built-in defaults.
func Resolve(explicit, startDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	path, found, err := FindConfigFile(startDir)
	if err != nil {
		return "", err
	}
	if found {
		return path, nil
	}
	global := GlobalConfigPath()
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}
