package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

// ReloadInterval is the minimum time between two reloads triggered by Watch.
var ReloadInterval = 250 * time.Millisecond

// Watch reloads the file whenever it is written or recreated and calls
// onReload with the result of each reload. It blocks until ctx is done.
//
// Editors often emit several events per save; reloads are rate limited to
// one per ReloadInterval. Watch only works on the OS filesystem.
func (c *SyncConfig) Watch(ctx context.Context, onReload func(error)) error {
	if _, ok := c.fs.(*afero.OsFs); !ok {
		return oops.In("config").With("path", c.path).Wrapf(ErrWatchUnsupported, "watching %s", c.path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return oops.Wrapf(err, "creating file watcher")
	}
	defer w.Close()

	// watch the directory so that rename-over-save editors are seen
	dir := filepath.Dir(c.path)
	if err := w.Add(dir); err != nil {
		return oops.In("config").With("dir", dir).Wrapf(err, "watching %s", dir)
	}
	target := filepath.Clean(c.path)
	limiter := rate.NewLimiter(rate.Every(ReloadInterval), 1)

	log.WithFields(logger.Fields{
		"at":   "(SyncConfig) Watch",
		"path": c.path,
	}).Info("watching config")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			err := c.Reload()
			log.WithFields(logger.Fields{
				"at":    "(SyncConfig) Watch",
				"path":  c.path,
				"event": ev.Op.String(),
			}).Debug("config reloaded")
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).WithFields(logger.Fields{
				"at":   "(SyncConfig) Watch",
				"path": c.path,
			}).Warn("file watcher error")
		}
	}
}
