package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(RoleClient, WithBaseDir(dir), WithLocale("en_US"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.ServerIP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- cfg.Watch(ctx, func(err error) {
			if err == nil {
				reloads.Add(1)
			}
		})
	}()

	path := filepath.Join(dir, "config", "serversync", "serversync-client.cfg")
	content := []byte("serverconnection {\n    S:SERVER_IP=10.1.1.1\n}\n")
	assert.Eventually(t, func() bool {
		// replace the file until the watcher is registered and has seen it
		tmp := path + ".tmp"
		if os.WriteFile(tmp, content, 0o644) != nil || os.Rename(tmp, path) != nil {
			return false
		}
		v, err := cfg.Get(EntryServerIP)
		return reloads.Load() > 0 && err == nil && v.String() == "10.1.1.1"
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_RequiresOsFs(t *testing.T) {
	cfg := mustLoad(t, afero.NewMemMapFs(), RoleServer)
	err := cfg.Watch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrWatchUnsupported)
}
