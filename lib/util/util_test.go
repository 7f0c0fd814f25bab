package util

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/cfg/dir", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/cfg/file.cfg", []byte("x"), 0o644))

	assert.True(t, FileExists(fsys, "/cfg/file.cfg"))
	assert.False(t, FileExists(fsys, "/cfg/dir"), "directories are not files")
	assert.False(t, FileExists(fsys, "/cfg/missing.cfg"))
}

func TestUserHome(t *testing.T) {
	home := UserHome()
	assert.NotEmpty(t, home)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", "."},
		{"~", home},
		{"~/servers/mc", filepath.Join(home, "servers", "mc")},
		{"relative/../dir", "dir"},
		{"/abs/path/", "/abs/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), ExpandHome(tt.in))
		})
	}
}
