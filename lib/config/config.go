package config

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"golang.org/x/text/language"

	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

// Dir is the directory, relative to the base directory, holding the files.
var Dir = filepath.Join("config", "serversync")

// Fields holds the typed view of a config file. Fields a role does not
// define stay at their zero value.
type Fields struct {
	Locale               string
	FileIgnoreList       []string
	ConfigIncludeList    []string
	PushClientMods       bool
	DirectoryIncludeList []string
	ServerPort           int
	LastUpdate           string
	RefuseClientMods     bool
	ServerIP             string

	// PullServerConfig is a runtime switch for the sync client. It is never
	// persisted.
	PullServerConfig bool
}

// SyncConfig is the facade over one role's config file.
type SyncConfig struct {
	Fields

	role         Role
	schema       Schema
	fs           afero.Fs
	baseDir      string
	locale       string
	path         string
	doc          *mcconfig.Document
	diags        []Diagnostic
	bootstrapped bool

	mu sync.Mutex
}

// Option configures Load.
type Option func(*SyncConfig)

// WithBaseDir sets the directory the config path is resolved against.
// The default is the working directory.
func WithBaseDir(dir string) Option {
	return func(c *SyncConfig) { c.baseDir = dir }
}

// WithFs replaces the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *SyncConfig) { c.fs = fsys }
}

// WithLocale overrides the host locale used as the LOCALE default.
func WithLocale(locale string) Option {
	return func(c *SyncConfig) { c.locale = locale }
}

// WithPullServerConfig sets the initial PullServerConfig. The default is true.
func WithPullServerConfig(pull bool) Option {
	return func(c *SyncConfig) { c.PullServerConfig = pull }
}

// Load opens the config file of role, creating it from the schema when it
// is missing or blank.
//
// The returned facade is always usable. A non-nil error means the file
// exists but could not be read or parsed: every field then holds its
// schema default and Flush refuses to overwrite the file.
func Load(role Role, opts ...Option) (*SyncConfig, error) {
	c := &SyncConfig{
		role:    role,
		fs:      afero.NewOsFs(),
		baseDir: ".",
	}
	c.PullServerConfig = true
	for _, opt := range opts {
		opt(c)
	}
	if c.locale == "" {
		c.locale = DefaultLocale()
	}

	schema, err := SchemaFor(role, c.locale)
	if err != nil {
		return nil, err
	}
	c.schema = schema
	c.path = filepath.Join(c.baseDir, Dir, role.FileName())

	log.WithFields(logger.Fields{
		"at":   "Load",
		"role": role.String(),
		"path": c.path,
	}).Debug("loading config")

	err = c.load()
	c.resolve()
	return c, err
}

// load reads or bootstraps the document. Callers hold mu or own c.
func (c *SyncConfig) load() error {
	c.bootstrapped = false
	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		c.diagnose(Diagnostic{
			Kind: DiagnosticIO,
			Err:  oops.Wrapf(err, "creating %s", filepath.Dir(c.path)),
		})
	}

	data, err := afero.ReadFile(c.fs, c.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.bootstrap()
		return nil
	case err != nil:
		c.doc = nil
		err = oops.In("config").With("path", c.path).Wrapf(err, "reading %s", c.path)
		c.diagnose(Diagnostic{Kind: DiagnosticIO, Err: err})
		return err
	case len(bytes.TrimSpace(data)) == 0:
		c.bootstrap()
		return nil
	}

	doc, warnings, err := mcconfig.Parse(data)
	for _, w := range warnings {
		c.diagnose(Diagnostic{Kind: DiagnosticParse, Line: w.Line, Err: w})
	}
	if err != nil {
		c.doc = nil
		d := Diagnostic{Kind: DiagnosticParse, Err: err}
		var perr *mcconfig.ParseError
		if errors.As(err, &perr) {
			d.Line = perr.Line
		}
		c.diagnose(d)
		return oops.In("config").With("path", c.path).Wrapf(err, "parsing %s", c.path)
	}
	c.doc = doc
	return nil
}

// bootstrap replaces the document with the schema defaults and writes it.
// A failed write leaves the in-memory document in place.
func (c *SyncConfig) bootstrap() {
	c.doc = c.schema.Document()
	c.bootstrapped = true
	if err := mcconfig.WriteFile(c.fs, c.path, c.doc); err != nil {
		c.diagnose(Diagnostic{Kind: DiagnosticIO, Err: err})
		return
	}
	log.WithFields(logger.Fields{
		"at":   "(SyncConfig) bootstrap",
		"path": c.path,
		"role": c.role.String(),
	}).Info("created default config")
}

// Flush truncates the file and writes the current document to it.
func (c *SyncConfig) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return oops.In("config").With("path", c.path).Wrapf(ErrNotLoaded, "refusing to overwrite %s", c.path)
	}
	if err := mcconfig.WriteFile(c.fs, c.path, c.doc); err != nil {
		return oops.In("config").With("path", c.path).Wrapf(err, "flushing config")
	}
	log.WithFields(logger.Fields{
		"at":      "(SyncConfig) Flush",
		"path":    c.path,
		"entries": c.doc.EntryCount(),
	}).Debug("config flushed")
	return nil
}

// Reload discards in-memory changes and diagnostics and loads the file
// again, bootstrapping it if it has gone missing.
func (c *SyncConfig) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = nil
	err := c.load()
	c.resolve()
	return err
}

// Get returns the typed value of a schema entry.
func (c *SyncConfig) Get(name string) (mcconfig.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.schema.Field(name); !ok {
		return nil, c.unknown(name)
	}
	return bindings[name].read(c), nil
}

// Role returns the role the facade was loaded for.
func (c *SyncConfig) Role() Role { return c.role }

// Path returns the config file location.
func (c *SyncConfig) Path() string { return c.path }

// Schema returns a copy of the role's schema.
func (c *SyncConfig) Schema() Schema { return append(Schema(nil), c.schema...) }

// Bootstrapped reports whether the last load created the file from defaults.
func (c *SyncConfig) Bootstrapped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bootstrapped
}

// Loaded reports whether a document is held, i.e. whether Flush can succeed.
func (c *SyncConfig) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc != nil
}

// Document returns a copy of the parsed document, or nil if the file could
// not be parsed.
func (c *SyncConfig) Document() *mcconfig.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil
	}
	return c.doc.Clone()
}

// Diagnostics returns what the last Load or Reload found.
func (c *SyncConfig) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diags...)
}

// LocaleTag returns LOCALE as a language tag.
func (c *SyncConfig) LocaleTag() language.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	tag, err := parseLocale(c.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func (c *SyncConfig) unknown(name string) error {
	return oops.In("config").With("role", c.role.String()).Wrapf(ErrUnknownEntry, "%s", name)
}
