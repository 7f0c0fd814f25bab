package mcconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_CategoryOrder(t *testing.T) {
	doc := NewDocument()
	for _, name := range []string{"general", "rules", "serverconnection", "misc"} {
		doc.AddCategory(name)
	}
	// re-adding must not move an existing category
	doc.AddCategory("general")

	var names []string
	for _, c := range doc.Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"general", "rules", "serverconnection", "misc"}, names)
	assert.Equal(t, 4, doc.Len())
}

func TestDocument_Lookup(t *testing.T) {
	doc := NewDocument()
	doc.Put(NewEntry("rules", "FILE_IGNORE_LIST", ListValue{"a.jar"}))
	doc.Put(NewEntry("misc", "LOCALE", StringValue("en_US")))
	doc.Put(NewEntry("misc", "FILE_IGNORE_LIST", ListValue{"b.jar"}))

	e, ok := doc.Lookup("LOCALE")
	require.True(t, ok)
	assert.Equal(t, "misc", e.Category)

	// first category in document order wins
	e, ok = doc.Lookup("FILE_IGNORE_LIST")
	require.True(t, ok)
	assert.Equal(t, "rules", e.Category)
	assert.Equal(t, ListValue{"a.jar"}, e.Value)

	_, ok = doc.Lookup("MISSING")
	assert.False(t, ok)
	assert.Equal(t, 3, doc.EntryCount())
}

func TestCategory_SetReplacesInPlace(t *testing.T) {
	c := NewCategory("general")
	c.Set(NewEntry("", "A", BoolValue(true)))
	c.Set(NewEntry("", "B", BoolValue(true)))
	replaced := c.Set(NewEntry("", "A", BoolValue(false)))

	assert.True(t, replaced)
	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Name)
	assert.Equal(t, BoolValue(false), entries[0].Value)
	assert.Equal(t, "general", entries[0].Category)
}

func TestCategory_AddRejectsDuplicates(t *testing.T) {
	c := NewCategory("rules")
	require.NoError(t, c.Add(NewEntry("rules", "X", StringValue("1"))))
	assert.Error(t, c.Add(NewEntry("rules", "X", StringValue("2"))))
	assert.Equal(t, 1, c.Len())
}

func TestCategory_Remove(t *testing.T) {
	c := NewCategory("rules")
	c.Set(NewEntry("rules", "A", StringValue("a")))
	c.Set(NewEntry("rules", "B", StringValue("b")))
	c.Set(NewEntry("rules", "C", StringValue("c")))

	assert.True(t, c.Remove("B"))
	assert.False(t, c.Remove("B"))

	e, ok := c.Get("C")
	require.True(t, ok)
	assert.Equal(t, StringValue("c"), e.Value)
	assert.Equal(t, 2, c.Len())
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := NewDocument()
	doc.Put(NewEntry("rules", "LIST", ListValue{"a"}, "# comment"))

	clone := doc.Clone()
	require.True(t, doc.Equal(clone))

	e, _ := clone.Lookup("LIST")
	e.Value.(ListValue)[0] = "changed"
	e.Comments[0] = "# other"

	orig, _ := doc.Lookup("LIST")
	assert.Equal(t, ListValue{"a"}, orig.Value)
	assert.Equal(t, []string{"# comment"}, orig.Comments)
	assert.False(t, doc.Equal(clone))
}

func TestDocument_EqualNil(t *testing.T) {
	var a, b *Document
	assert.True(t, a.Equal(b))
	assert.False(t, NewDocument().Equal(nil))
}
