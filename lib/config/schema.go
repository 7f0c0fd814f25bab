package config

import (
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

// Category names, in the order a bootstrapped file lists them.
const (
	CategoryGeneral    = "general"
	CategoryRules      = "rules"
	CategoryConnection = "serverconnection"
	CategoryMisc       = "misc"
)

// Entry names understood by the facade.
const (
	EntryLocale               = "LOCALE"
	EntryFileIgnoreList       = "FILE_IGNORE_LIST"
	EntryConfigIncludeList    = "CONFIG_INCLUDE_LIST"
	EntryPushClientMods       = "PUSH_CLIENT_MODS"
	EntryDirectoryIncludeList = "DIRECTORY_INCLUDE_LIST"
	EntryServerPort           = "SERVER_PORT"
	EntryLastUpdate           = "LAST_UPDATE"
	EntryRefuseClientMods     = "REFUSE_CLIENT_MODS"
	EntryServerIP             = "SERVER_IP"

	// EntryModIgnoreList is the name FILE_IGNORE_LIST had in older files.
	EntryModIgnoreList = "MOD_IGNORE_LIST"
)

const (
	DefaultServerIP   = "127.0.0.1"
	DefaultServerPort = 38067
	MinServerPort     = 1
	MaxServerPort     = 49151
)

// legacyNames maps an entry to the older name that may stand in for it.
var legacyNames = map[string]string{
	EntryFileIgnoreList: EntryModIgnoreList,
}

// Field describes one schema entry.
type Field struct {
	Category string
	Type     mcconfig.Type
	Name     string
	Default  mcconfig.Value
	Comments []string
	// Bootstrap is false for entries that are read when present but never
	// written into a freshly created file.
	Bootstrap bool
}

// Schema is the ordered list of entries a role knows about.
type Schema []Field

// Field returns the schema entry with the given name.
func (s Schema) Field(name string) (Field, bool) {
	return lo.Find(s, func(f Field) bool { return f.Name == name })
}

// Categories returns category names in first-seen order.
func (s Schema) Categories() []string {
	return lo.Uniq(lo.Map(s, func(f Field, _ int) string { return f.Category }))
}

// Document builds the default document: bootstrap entries in declaration
// order, grouped by category, each carrying its schema comments.
func (s Schema) Document() *mcconfig.Document {
	doc := mcconfig.NewDocument()
	fields := lo.Filter(s, func(f Field, _ int) bool { return f.Bootstrap })
	for _, f := range fields {
		entry := mcconfig.NewEntry(f.Category, f.Name, mcconfig.CloneValue(f.Default), f.Comments...)
		entry.Type = f.Type
		// schema names are unique, Add cannot fail here
		_ = doc.AddCategory(f.Category).Add(entry)
	}
	return doc
}

var schemas = map[Role]func(locale string) Schema{
	RoleServer: serverSchema,
	RoleClient: clientSchema,
}

// SchemaFor returns the schema of role, with LOCALE defaulting to locale.
func SchemaFor(role Role, locale string) (Schema, error) {
	build, ok := schemas[role]
	if !ok {
		return nil, oops.With("role", int(role)).Wrapf(ErrUnknownRole, "no schema for role %d", int(role))
	}
	return build(locale), nil
}

func serverSchema(locale string) Schema {
	return Schema{
		{
			Category:  CategoryGeneral,
			Type:      mcconfig.TypeBool,
			Name:      EntryPushClientMods,
			Default:   mcconfig.BoolValue(false),
			Comments:  []string{"# set true to push client side mods from clientmods directory, set on server [default: false]"},
			Bootstrap: true,
		},
		{
			Category:  CategoryRules,
			Type:      mcconfig.TypeStringList,
			Name:      EntryConfigIncludeList,
			Default:   mcconfig.ListValue{},
			Comments:  []string{"# These configs are included, by default configs are not synced"},
			Bootstrap: true,
		},
		{
			Category:  CategoryRules,
			Type:      mcconfig.TypeStringList,
			Name:      EntryDirectoryIncludeList,
			Default:   mcconfig.ListValue{"mods"},
			Comments:  []string{"# These directories are included, by default mods and configs are included"},
			Bootstrap: true,
		},
		{
			Category:  CategoryRules,
			Type:      mcconfig.TypeStringList,
			Name:      EntryFileIgnoreList,
			Default:   mcconfig.ListValue{},
			Comments:  []string{"# These files are ignored by serversync, list auto updates with mods added to the clientmods directory"},
			Bootstrap: true,
		},
		{
			Category:  CategoryConnection,
			Type:      mcconfig.TypeInt,
			Name:      EntryServerPort,
			Default:   mcconfig.IntValue(DefaultServerPort),
			Comments:  []string{"# The port that your server will be serving on [range: 1 ~ 49151, default: 38067]"},
			Bootstrap: true,
		},
		{
			Category:  CategoryMisc,
			Type:      mcconfig.TypeString,
			Name:      EntryLocale,
			Default:   mcconfig.StringValue(locale),
			Comments:  []string{"# Your locale string"},
			Bootstrap: true,
		},
		{
			Category: CategoryMisc,
			Type:     mcconfig.TypeString,
			Name:     EntryLastUpdate,
			Default:  mcconfig.StringValue(""),
		},
	}
}

func clientSchema(locale string) Schema {
	return Schema{
		{
			Category:  CategoryGeneral,
			Type:      mcconfig.TypeBool,
			Name:      EntryRefuseClientMods,
			Default:   mcconfig.BoolValue(false),
			Comments:  []string{"# Set this to true to refuse client mods pushed by the server, [default: false]"},
			Bootstrap: true,
		},
		{
			Category:  CategoryRules,
			Type:      mcconfig.TypeStringList,
			Name:      EntryConfigIncludeList,
			Default:   mcconfig.ListValue{},
			Comments:  []string{"# These configs are included, by default configs are not synced."},
			Bootstrap: true,
		},
		{
			Category:  CategoryRules,
			Type:      mcconfig.TypeStringList,
			Name:      EntryFileIgnoreList,
			Default:   mcconfig.ListValue{},
			Comments:  []string{"# These files are ignored by serversync, add your client mods here to stop serversync deleting them."},
			Bootstrap: true,
		},
		{
			Category:  CategoryConnection,
			Type:      mcconfig.TypeString,
			Name:      EntryServerIP,
			Default:   mcconfig.StringValue(DefaultServerIP),
			Comments:  []string{"# The IP address of the server [default: 127.0.0.1]"},
			Bootstrap: true,
		},
		{
			Category:  CategoryConnection,
			Type:      mcconfig.TypeInt,
			Name:      EntryServerPort,
			Default:   mcconfig.IntValue(DefaultServerPort),
			Comments:  []string{"# The port that your server will be serving on [range: 1 ~ 49151, default: 38067]"},
			Bootstrap: true,
		},
		{
			Category:  CategoryMisc,
			Type:      mcconfig.TypeString,
			Name:      EntryLocale,
			Default:   mcconfig.StringValue(locale),
			Comments:  []string{"# Your locale string"},
			Bootstrap: true,
		},
	}
}
