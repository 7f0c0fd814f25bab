package config

import (
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

// Set validates v against the schema entry name, stores it in the typed
// field and writes it into the document. An existing entry is updated in
// place and keeps its comments; otherwise the entry is added to its schema
// category with the schema comments. Nothing reaches disk until Flush.
func (c *SyncConfig) Set(name string, v mcconfig.Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.schema.Field(name)
	if !ok {
		return c.unknown(name)
	}
	if c.doc == nil {
		return oops.In("config").With("path", c.path).Wrapf(ErrNotLoaded, "cannot set %s", name)
	}
	if v == nil || v.Type() != f.Type {
		return &CoercionError{Entry: name, Want: f.Type, Value: v, Err: mcconfig.ErrTypeMismatch}
	}
	v = trimValue(v)
	if err := bindings[name].assign(c, v); err != nil {
		return &CoercionError{Entry: name, Want: f.Type, Value: v, Err: err}
	}

	if e, found := c.doc.Lookup(name); found {
		e.Type = f.Type
		e.Value = v
	} else {
		e := mcconfig.NewEntry(f.Category, name, v, f.Comments...)
		e.Type = f.Type
		c.doc.AddCategory(f.Category).Set(e)
	}

	log.WithFields(logger.Fields{
		"at":    "(SyncConfig) Set",
		"entry": name,
		"value": v.String(),
	}).Debug("config entry updated")
	return nil
}

// SetBool sets a B entry.
func (c *SyncConfig) SetBool(name string, b bool) error {
	return c.Set(name, mcconfig.BoolValue(b))
}

// SetInt sets an I entry.
func (c *SyncConfig) SetInt(name string, n int) error {
	return c.Set(name, mcconfig.IntValue(n))
}

// SetString sets a scalar S entry.
func (c *SyncConfig) SetString(name, s string) error {
	return c.Set(name, mcconfig.StringValue(s))
}

// SetStringList replaces the items of an S list entry.
func (c *SyncConfig) SetStringList(name string, items []string) error {
	return c.Set(name, append(mcconfig.ListValue{}, items...))
}

// SetLastUpdate records the time of the last successful sync.
func (c *SyncConfig) SetLastUpdate(ts string) error {
	return c.SetString(EntryLastUpdate, ts)
}

// trimValue drops the surrounding whitespace the reader would drop anyway,
// so what is stored matches what a reload returns.
func trimValue(v mcconfig.Value) mcconfig.Value {
	switch x := v.(type) {
	case mcconfig.StringValue:
		return mcconfig.StringValue(strings.TrimSpace(string(x)))
	case mcconfig.ListValue:
		out := make(mcconfig.ListValue, len(x))
		for i, item := range x {
			out[i] = strings.TrimSpace(item)
		}
		return out
	}
	return v
}
