package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-i2p/logger"
)

// UserHome returns the current user's home directory.
// Falls back to $HOME, then USERPROFILE, then the working directory.
func UserHome() string {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return homeDir
	}
	for _, env := range []string{"HOME", "USERPROFILE"} {
		if home := os.Getenv(env); home != "" {
			log.WithError(err).WithFields(logger.Fields{"env": env}).Warn("os.UserHomeDir failed, falling back to environment")
			return home
		}
	}
	if wd, wdErr := os.Getwd(); wdErr == nil {
		log.WithError(err).Warn("home directory unavailable; falling back to working directory")
		return wd
	}
	return "."
}

// ExpandHome replaces a leading "~" in path with the user's home directory
// and cleans the result. An empty path becomes ".".
func ExpandHome(path string) string {
	switch {
	case path == "":
		return "."
	case path == "~":
		return UserHome()
	case strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`):
		return filepath.Join(UserHome(), path[2:])
	}
	return filepath.Clean(path)
}
