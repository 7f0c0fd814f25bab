// Package signals dispatches process signals to registered handlers:
// SIGHUP to reload handlers, SIGINT and SIGTERM to interrupt handlers.
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Handler is a function called when a signal is received.
type Handler func()

// HandlerID identifies a registration so it can be removed.
type HandlerID int

type registeredHandler struct {
	id HandlerID
	fn Handler
}

// Registry holds reload and interrupt handlers. The zero value is not
// usable; call New.
type Registry struct {
	mu           sync.RWMutex
	reloaders    []registeredHandler
	interrupters []registeredHandler
	nextID       HandlerID

	// buffered so a signal delivered while a handler runs is not lost
	sigs     chan os.Signal
	done     chan struct{}
	stopOnce sync.Once
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		sigs: make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
}

// OnReload registers f for SIGHUP. Nil handlers are ignored and return -1.
func (r *Registry) OnReload(f Handler) HandlerID {
	return r.add(&r.reloaders, f)
}

// OnInterrupt registers f for SIGINT and SIGTERM. Nil handlers are ignored
// and return -1.
func (r *Registry) OnInterrupt(f Handler) HandlerID {
	return r.add(&r.interrupters, f)
}

func (r *Registry) add(list *[]registeredHandler, f Handler) HandlerID {
	if f == nil {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	*list = append(*list, registeredHandler{id: id, fn: f})
	return id
}

// Remove drops the handler registered under id, whichever kind it is.
func (r *Registry) Remove(id HandlerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloaders = without(r.reloaders, id)
	r.interrupters = without(r.interrupters, id)
}

func without(list []registeredHandler, id HandlerID) []registeredHandler {
	for i, h := range list {
		if h.id == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Handle subscribes to the platform's signals and runs the matching
// handlers until ctx is done or Stop is called.
func (r *Registry) Handle(ctx context.Context) {
	signal.Notify(r.sigs, notified...)
	defer signal.Stop(r.sigs)
	r.loop(ctx)
}

func (r *Registry) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case sig := <-r.sigs:
			r.dispatch(sig)
		}
	}
}

// Raise delivers sig to the registry as if the process had received it.
// It returns without delivering once Stop has been called.
func (r *Registry) Raise(sig os.Signal) {
	select {
	case r.sigs <- sig:
	case <-r.done:
	}
}

// Stop makes Handle return. Safe to call more than once.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func (r *Registry) dispatch(sig os.Signal) {
	switch {
	case isReload(sig):
		r.run("reload", &r.reloaders)
	case isInterrupt(sig):
		r.run("interrupt", &r.interrupters)
	default:
		log.WithFields(logger.Fields{"signal": sig.String()}).Debug("ignoring signal")
	}
}

// run calls a snapshot of the handlers in registration order. A panicking
// handler is logged and does not stop the others.
func (r *Registry) run(kind string, list *[]registeredHandler) {
	r.mu.RLock()
	snapshot := append([]registeredHandler(nil), *list...)
	r.mu.RUnlock()

	for _, h := range snapshot {
		func() {
			defer func() {
				if p := recover(); p != nil {
					log.WithFields(logger.Fields{
						"at":      "(Registry) run",
						"kind":    kind,
						"handler": int(h.id),
						"panic":   p,
					}).Error("signal handler panicked")
				}
			}()
			h.fn()
		}()
	}
}
