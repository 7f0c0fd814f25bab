package util

import (
	"github.com/spf13/afero"
)

// FileExists reports whether path names a regular file on fsys.
func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
