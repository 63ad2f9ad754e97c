package config

import (
	"os"
	"path/filepath"
)

// ConfigExtensions are the config file formats probed, in order
var ConfigExtensions = []string{"yml", "yaml", "json", "toml"}

// FindLocalConfig finds local config file by walking up directories
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range ConfigExtensions {
			path := filepath.Join(dir, ".presetgen."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

// FindGlobalConfig returns the first config file in the presetgen directory
// under configDir
func FindGlobalConfig(configDir string) string {
	if configDir == "" {
		return ""
	}

	for _, ext := range ConfigExtensions {
		path := filepath.Join(configDir, "presetgen", "config."+ext)

		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
