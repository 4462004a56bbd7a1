package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimePath = ".sejarahbot"

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("SEJARAH_RUNTIME_PATH"))
}

// resolveRuntimePath anchors a relative runtime path at the home directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimePath
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
