package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Dawn-MC/ServerSync/lib/config"
	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

// run executes the CLI with args against baseDir and returns stdout and stderr.
func run(t *testing.T, baseDir string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--base-dir", baseDir}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func cfgFile(baseDir, role string) string {
	return filepath.Join(baseDir, "config", "serversync", "serversync-"+role+".cfg")
}

func TestRootCommand(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "serversync", root.Use)
	assert.NotEmpty(t, root.Short)
	assert.NotEmpty(t, root.Long)
	assert.True(t, root.SilenceUsage)

	for _, name := range []string{"base-dir", "role", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestVersion(t *testing.T) {
	original := version
	defer SetVersion(original)
	SetVersion("1.2.3-test")

	out, _, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "serversync version 1.2.3-test\n", out)

	out, _, err = run(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Equal(t, "serversync version 1.2.3-test\n", out)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := cfgFile(dir, "server")

	out, _, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "created "+path+"\n", out)
	assert.FileExists(t, path)

	out, _, err = run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, path+" already exists\n", out)

	require.NoError(t, os.WriteFile(path, []byte("misc {\n    S:LOCALE=en_US\n}\n"), 0o644))
	out, _, err = run(t, dir, "config", "init", "--force")
	require.NoError(t, err)
	assert.Equal(t, "created "+path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "I:SERVER_PORT=38067")
}

func TestConfigGet(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, dir, "config", "get", "SERVER_PORT")
	require.NoError(t, err)
	assert.Equal(t, "38067\n", out)

	out, _, err = run(t, dir, "config", "get", "directory_include_list")
	require.NoError(t, err)
	assert.Equal(t, "mods\n", out)

	out, _, err = run(t, dir, "--role", "client", "config", "get", "SERVER_IP")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1\n", out)

	_, _, err = run(t, dir, "config", "get", "SERVER_IP")
	assert.ErrorIs(t, err, config.ErrUnknownEntry)
}

func TestConfigSet(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, dir, "config", "set", "SERVER_PORT", "40000")
	require.NoError(t, err)
	assert.Equal(t, "SERVER_PORT = 40000\n", out)

	out, _, err = run(t, dir, "config", "get", "SERVER_PORT")
	require.NoError(t, err)
	assert.Equal(t, "40000\n", out)

	_, _, err = run(t, dir, "config", "set", "FILE_IGNORE_LIST", "a.jar", "b.jar")
	require.NoError(t, err)
	out, _, err = run(t, dir, "config", "get", "FILE_IGNORE_LIST")
	require.NoError(t, err)
	assert.Equal(t, "a.jar\nb.jar\n", out)

	_, _, err = run(t, dir, "config", "set", "FILE_IGNORE_LIST")
	require.NoError(t, err)
	out, _, err = run(t, dir, "config", "get", "FILE_IGNORE_LIST")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = run(t, dir, "config", "set", "PUSH_CLIENT_MODS", "TRUE")
	require.NoError(t, err)
	data, err := os.ReadFile(cfgFile(dir, "server"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "B:PUSH_CLIENT_MODS=true\n")
	assert.Contains(t, string(data), "I:SERVER_PORT=40000\n")
}

func TestConfigSet_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"port out of range", []string{"SERVER_PORT", "0"}, config.ErrPortOutOfRange},
		{"port not a number", []string{"SERVER_PORT", "http"}, mcconfig.ErrInvalidInt},
		{"bool not a bool", []string{"PUSH_CLIENT_MODS", "yes"}, mcconfig.ErrInvalidBool},
		{"unknown entry", []string{"NOPE", "1"}, config.ErrUnknownEntry},
		{"list closer", []string{"CONFIG_INCLUDE_LIST", ">"}, config.ErrInvalidText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, _, err := run(t, dir, append([]string{"config", "set"}, tt.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("scalar takes one value", func(t *testing.T) {
		_, _, err := run(t, t.TempDir(), "config", "set", "SERVER_PORT", "1", "2")
		assert.Error(t, err)
	})
}

func TestConfigShow_YAML(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, dir, "config", "show", "-o", "yaml")
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 38067, got["serverconnection"]["SERVER_PORT"])
	assert.Equal(t, false, got["general"]["PUSH_CLIENT_MODS"])
	assert.Equal(t, []any{"mods"}, got["rules"]["DIRECTORY_INCLUDE_LIST"])
	assert.Equal(t, "", got["misc"]["LAST_UPDATE"])

	order := []string{"general:", "rules:", "serverconnection:", "misc:"}
	last := -1
	for _, key := range order {
		i := strings.Index(out, key)
		require.GreaterOrEqual(t, i, 0, key)
		assert.Greater(t, i, last, "%s keeps schema order", key)
		last = i
	}
}

func TestConfigShow_Table(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, dir, "--role", "client", "config", "show")
	require.NoError(t, err)
	for _, want := range []string{"CATEGORY", "SERVER_IP", "127.0.0.1", "SERVER_PORT", "38067", "REFUSE_CLIENT_MODS"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "PUSH_CLIENT_MODS")
}

func TestConfigShow_BadOutput(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "config", "show", "-o", "xml")
	assert.Error(t, err)
}

func TestConfig_EnvironmentSelectsRole(t *testing.T) {
	t.Setenv("SERVERSYNC_ROLE", "client")
	dir := t.TempDir()

	_, _, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, cfgFile(dir, "client"))
	assert.NoFileExists(t, cfgFile(dir, "server"))
}

func TestConfig_DiagnosticsOnStderr(t *testing.T) {
	dir := t.TempDir()
	path := cfgFile(dir, "server")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("serverconnection {\n    I:SERVER_PORT=99999\n}\n"), 0o644))

	out, errOut, err := run(t, dir, "config", "get", "SERVER_PORT")
	require.NoError(t, err)
	assert.Equal(t, "38067\n", out)
	assert.Contains(t, errOut, "warning: type coercion SERVER_PORT")
	assert.Contains(t, errOut, "warning: missing entry LOCALE")
}

func TestConfig_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := cfgFile(dir, "server")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := []byte("general {\n    B:PUSH_CLIENT_MODS=true\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	_, errOut, err := run(t, dir, "config", "set", "PUSH_CLIENT_MODS", "false")
	require.Error(t, err)
	assert.Equal(t, ExitCodeInvalidConfig, getExitCode(err))
	assert.Contains(t, errOut, "warning: parse (line 1)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestConfig_BrokenFileReadsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := cfgFile(dir, "server")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := []byte("general {\n    B:PUSH_CLIENT_MODS=true\n    I:SERVER_PORT=40000\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	out, errOut, err := run(t, dir, "config", "get", "PUSH_CLIENT_MODS")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
	assert.Contains(t, errOut, "warning: parse (line 1)")
	assert.Contains(t, errOut, "showing defaults")

	out, errOut, err = run(t, dir, "config", "show", "-o", "yaml")
	require.NoError(t, err)
	var got map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 38067, got["serverconnection"]["SERVER_PORT"])
	assert.Contains(t, errOut, "warning: parse (line 1)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeSuccess, getExitCode(nil))
	assert.Equal(t, ExitCodeError, getExitCode(errors.New("boom")))
	assert.Equal(t, ExitCodeInvalidConfig, getExitCode(&mcconfig.ParseError{Kind: mcconfig.KindUnterminatedList}))
	assert.Equal(t, ExitCodeInvalidConfig, getExitCode(config.ErrNotLoaded))
}
