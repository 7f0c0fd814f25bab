package cmd

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/Dawn-MC/ServerSync/lib/config"
	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

// renderTable prints one row per schema entry, in schema order.
func renderTable(w io.Writer, cfg *config.SyncConfig) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("%s (%s)", cfg.Path(), cfg.Role())
	t.AppendHeader(table.Row{"CATEGORY", "ENTRY", "TYPE", "VALUE"})

	for _, f := range cfg.Schema() {
		val, err := cfg.Get(f.Name)
		if err != nil {
			continue
		}
		t.AppendRow(table.Row{f.Category, f.Name, f.Type.String(), cellText(val)})
	}
	t.Render()
}

func cellText(v mcconfig.Value) string {
	if list, ok := v.(mcconfig.ListValue); ok {
		return strings.Join(list, "\n")
	}
	return v.String()
}

// renderYAML prints the effective values grouped by category, keeping the
// schema's order.
func renderYAML(w io.Writer, cfg *config.SyncConfig) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	sections := map[string]*yaml.Node{}

	for _, f := range cfg.Schema() {
		section, ok := sections[f.Category]
		if !ok {
			section = &yaml.Node{Kind: yaml.MappingNode}
			sections[f.Category] = section
			root.Content = append(root.Content, scalarNode(f.Category), section)
		}

		val, err := cfg.Get(f.Name)
		if err != nil {
			return err
		}
		node := &yaml.Node{}
		if err := node.Encode(mcconfig.Native(val)); err != nil {
			return oops.With("entry", f.Name).Wrapf(err, "encoding %s", f.Name)
		}
		section.Content = append(section.Content, scalarNode(f.Name), node)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return oops.Wrapf(err, "writing yaml")
	}
	return enc.Close()
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
