package mcconfig

import (
	"github.com/samber/oops"
)

// Entry is a single named, type-tagged value inside a category.
type Entry struct {
	// Category is the name of the category holding the entry.
	Category string
	Type     Type
	Name     string
	Value    Value
	// Comments are emitted verbatim, one per line, before the entry.
	Comments []string
}

// NewEntry builds an entry whose type is taken from the value.
func NewEntry(category, name string, value Value, comments ...string) *Entry {
	return &Entry{
		Category: category,
		Type:     value.Type(),
		Name:     name,
		Value:    value,
		Comments: append([]string(nil), comments...),
	}
}

func (e *Entry) clone() *Entry {
	return &Entry{
		Category: e.Category,
		Type:     e.Type,
		Name:     e.Name,
		Value:    CloneValue(e.Value),
		Comments: append([]string(nil), e.Comments...),
	}
}

func (e *Entry) equal(o *Entry) bool {
	return e.Category == o.Category &&
		e.Type == o.Type &&
		e.Name == o.Name &&
		ValuesEqual(e.Value, o.Value) &&
		stringsEqual(e.Comments, o.Comments)
}

// Category is a named, ordered group of entries. Entry names are unique
// within a category.
type Category struct {
	Name string
	// Comments precede the category header.
	Comments []string
	// Trailer holds comments found after the last entry, before the closing brace.
	Trailer []string

	entries []*Entry
	index   map[string]int
}

// NewCategory returns an empty category.
func NewCategory(name string) *Category {
	return &Category{
		Name:  name,
		index: make(map[string]int),
	}
}

// Len returns the number of entries.
func (c *Category) Len() int {
	return len(c.entries)
}

// Entries returns the entries in insertion order. The slice is a copy; the
// entries are shared.
func (c *Category) Entries() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

// Get returns the entry with the given name.
func (c *Category) Get(name string) (*Entry, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i], true
}

// Add appends an entry. It fails if the name is already present.
func (c *Category) Add(e *Entry) error {
	if _, ok := c.index[e.Name]; ok {
		return oops.
			In("mcconfig").
			With("category", c.Name).
			With("entry", e.Name).
			Errorf("duplicate entry %q in category %q", e.Name, c.Name)
	}
	c.Set(e)
	return nil
}

// Set stores an entry. An existing entry with the same name is replaced in
// place, otherwise the entry is appended. It reports whether an entry was
// replaced.
func (c *Category) Set(e *Entry) bool {
	e.Category = c.Name
	if i, ok := c.index[e.Name]; ok {
		c.entries[i] = e
		return true
	}
	c.index[e.Name] = len(c.entries)
	c.entries = append(c.entries, e)
	return false
}

// Remove deletes the named entry and reports whether it existed.
func (c *Category) Remove(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Name] = j
	}
	return true
}

func (c *Category) clone() *Category {
	out := NewCategory(c.Name)
	out.Comments = append([]string(nil), c.Comments...)
	out.Trailer = append([]string(nil), c.Trailer...)
	for _, e := range c.entries {
		out.Set(e.clone())
	}
	return out
}

func (c *Category) equal(o *Category) bool {
	if c.Name != o.Name || len(c.entries) != len(o.entries) {
		return false
	}
	if !stringsEqual(c.Comments, o.Comments) || !stringsEqual(c.Trailer, o.Trailer) {
		return false
	}
	for i := range c.entries {
		if !c.entries[i].equal(o.entries[i]) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
