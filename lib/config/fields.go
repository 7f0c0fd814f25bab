package config

import (
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

// binding connects a schema entry to its typed field. assign validates v
// and stores it; read renders the field back as a value.
type binding struct {
	assign func(c *SyncConfig, v mcconfig.Value) error
	read   func(c *SyncConfig) mcconfig.Value
}

var bindings = map[string]binding{
	EntryLocale:               stringBinding(func(c *SyncConfig) *string { return &c.Locale }, validateLocale),
	EntryFileIgnoreList:       listBinding(func(c *SyncConfig) *[]string { return &c.FileIgnoreList }),
	EntryConfigIncludeList:    listBinding(func(c *SyncConfig) *[]string { return &c.ConfigIncludeList }),
	EntryDirectoryIncludeList: listBinding(func(c *SyncConfig) *[]string { return &c.DirectoryIncludeList }),
	EntryPushClientMods:       boolBinding(func(c *SyncConfig) *bool { return &c.PushClientMods }),
	EntryRefuseClientMods:     boolBinding(func(c *SyncConfig) *bool { return &c.RefuseClientMods }),
	EntryServerIP:             stringBinding(func(c *SyncConfig) *string { return &c.ServerIP }, nil),
	EntryLastUpdate:           stringBinding(func(c *SyncConfig) *string { return &c.LastUpdate }, nil),
	EntryServerPort: {
		assign: func(c *SyncConfig, v mcconfig.Value) error {
			n, err := mcconfig.AsInt(v)
			if err != nil {
				return err
			}
			if n < MinServerPort || n > MaxServerPort {
				return oops.Wrapf(ErrPortOutOfRange, "%d not in %d..%d", n, MinServerPort, MaxServerPort)
			}
			c.ServerPort = int(n)
			return nil
		},
		read: func(c *SyncConfig) mcconfig.Value { return mcconfig.IntValue(c.ServerPort) },
	},
}

func boolBinding(field func(*SyncConfig) *bool) binding {
	return binding{
		assign: func(c *SyncConfig, v mcconfig.Value) error {
			b, err := mcconfig.AsBool(v)
			if err != nil {
				return err
			}
			*field(c) = b
			return nil
		},
		read: func(c *SyncConfig) mcconfig.Value { return mcconfig.BoolValue(*field(c)) },
	}
}

func stringBinding(field func(*SyncConfig) *string, validate func(string) error) binding {
	return binding{
		assign: func(c *SyncConfig, v mcconfig.Value) error {
			s, err := mcconfig.AsString(v)
			if err != nil {
				return err
			}
			if err := validateText(s); err != nil {
				return err
			}
			if validate != nil {
				if err := validate(s); err != nil {
					return err
				}
			}
			*field(c) = s
			return nil
		},
		read: func(c *SyncConfig) mcconfig.Value { return mcconfig.StringValue(*field(c)) },
	}
}

func listBinding(field func(*SyncConfig) *[]string) binding {
	return binding{
		assign: func(c *SyncConfig, v mcconfig.Value) error {
			items, err := mcconfig.AsStringList(v)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := validateListItem(item); err != nil {
					return err
				}
			}
			*field(c) = items
			return nil
		},
		read: func(c *SyncConfig) mcconfig.Value { return append(mcconfig.ListValue{}, *field(c)...) },
	}
}

func validateLocale(s string) error {
	_, err := parseLocale(s)
	return err
}

func validateText(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return oops.Wrapf(ErrInvalidText, "%q spans several lines", s)
	}
	return nil
}

func validateListItem(s string) error {
	if err := validateText(s); err != nil {
		return err
	}
	switch strings.TrimSpace(s) {
	case "":
		return oops.Wrapf(ErrInvalidText, "empty list item")
	case ">":
		return oops.Wrapf(ErrInvalidText, "list item %q would close the list", s)
	}
	return nil
}

// resolve recomputes every typed field of the role from the document.
func (c *SyncConfig) resolve() {
	c.resetFields()
	for _, f := range c.schema {
		c.resolveField(f)
	}
}

func (c *SyncConfig) resetFields() {
	pull := c.PullServerConfig
	c.Fields = Fields{PullServerConfig: pull}
}

func (c *SyncConfig) resolveField(f Field) {
	b := bindings[f.Name]
	entry, found := c.lookup(f.Name)
	if !found {
		// a file that failed to parse already carries its own diagnostic
		if f.Bootstrap && c.doc != nil {
			c.diagnose(Diagnostic{Kind: DiagnosticMissingEntry, Entry: f.Name})
		}
		c.applyDefault(f, b)
		return
	}
	if err := b.assign(c, entry.Value); err != nil {
		c.diagnose(Diagnostic{
			Kind:  DiagnosticTypeCoercion,
			Entry: entry.Name,
			Err:   &CoercionError{Entry: entry.Name, Want: f.Type, Value: entry.Value, Err: err},
		})
		c.applyDefault(f, b)
	}
}

func (c *SyncConfig) applyDefault(f Field, b binding) {
	if err := b.assign(c, mcconfig.CloneValue(f.Default)); err != nil {
		log.WithFields(logger.Fields{
			"at":     "(SyncConfig) applyDefault",
			"entry":  f.Name,
			"reason": err.Error(),
		}).Error("schema default rejected")
	}
}

// lookup finds name in any category, then tries its legacy name.
func (c *SyncConfig) lookup(name string) (*mcconfig.Entry, bool) {
	if c.doc == nil {
		return nil, false
	}
	if e, ok := c.doc.Lookup(name); ok {
		return e, true
	}
	legacy, ok := legacyNames[name]
	if !ok {
		return nil, false
	}
	e, ok := c.doc.Lookup(legacy)
	if ok {
		log.WithFields(logger.Fields{
			"at":     "(SyncConfig) lookup",
			"entry":  name,
			"legacy": legacy,
		}).Debug("using legacy entry")
	}
	return e, ok
}
