package mcconfig

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Document is an insertion-ordered collection of categories.
//
// Category order is fixed by the first AddCategory call for a name; adding
// entries to an existing category never moves it.
type Document struct {
	categories *linkedhashmap.Map
	// Trailer holds comments found after the last category.
	Trailer []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{categories: linkedhashmap.New()}
}

// AddCategory returns the named category, creating it at the end of the
// document if it does not exist yet.
func (d *Document) AddCategory(name string) *Category {
	if c, ok := d.Category(name); ok {
		return c
	}
	c := NewCategory(name)
	d.categories.Put(name, c)
	return c
}

// Category returns the named category.
func (d *Document) Category(name string) (*Category, bool) {
	v, ok := d.categories.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Category), true
}

// Categories returns the categories in insertion order.
func (d *Document) Categories() []*Category {
	values := d.categories.Values()
	out := make([]*Category, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*Category))
	}
	return out
}

// Len returns the number of categories.
func (d *Document) Len() int {
	return d.categories.Size()
}

// EntryCount returns the number of entries across all categories.
func (d *Document) EntryCount() int {
	n := 0
	for _, c := range d.Categories() {
		n += c.Len()
	}
	return n
}

// Lookup finds an entry by name regardless of its category. Categories are
// searched in order and the first match wins.
func (d *Document) Lookup(name string) (*Entry, bool) {
	for _, c := range d.Categories() {
		if e, ok := c.Get(name); ok {
			return e, true
		}
	}
	return nil, false
}

// Put stores e in the category named by e.Category, creating the category if
// needed. An entry with the same name in that category is replaced.
func (d *Document) Put(e *Entry) {
	d.AddCategory(e.Category).Set(e)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := NewDocument()
	out.Trailer = append([]string(nil), d.Trailer...)
	for _, c := range d.Categories() {
		out.categories.Put(c.Name, c.clone())
	}
	return out
}

// Equal reports whether both documents hold the same categories, entries,
// values and comments in the same order.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Len() != o.Len() || !stringsEqual(d.Trailer, o.Trailer) {
		return false
	}
	mine, theirs := d.Categories(), o.Categories()
	for i := range mine {
		if !mine[i].equal(theirs[i]) {
			return false
		}
	}
	return true
}
