package mcconfig

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/afero"
)

const (
	entryIndent   = "    "
	elementIndent = "        "
)

// Writer serialises a Document. Output is deterministic: equal documents
// produce identical bytes.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Marshal returns the serialised form of doc.
func Marshal(doc *Document) []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer cannot fail
	_ = NewWriter(&buf).Write(doc)
	return buf.Bytes()
}

// WriteFile truncates (or creates) the file at path and writes doc to it.
// The file is closed on every return path.
func WriteFile(fs afero.Fs, path string, doc *Document) (err error) {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return oops.Wrapf(err, "opening %s for writing", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = oops.Wrapf(cerr, "closing %s", path)
		}
	}()
	if err := NewWriter(f).Write(doc); err != nil {
		return oops.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Write emits doc and flushes the underlying writer.
func (w *Writer) Write(doc *Document) error {
	for i, c := range doc.Categories() {
		if i > 0 {
			w.line("")
		}
		w.category(c)
	}
	if len(doc.Trailer) > 0 {
		if doc.Len() > 0 {
			w.line("")
		}
		for _, comment := range doc.Trailer {
			w.line(comment)
		}
	}
	return w.w.Flush()
}

func (w *Writer) category(c *Category) {
	for _, comment := range c.Comments {
		w.line(comment)
	}
	w.line(quoteName(c.Name) + " {")
	for _, e := range c.entries {
		w.entry(e)
	}
	for _, comment := range c.Trailer {
		w.line(entryIndent + comment)
	}
	w.line("}")
}

func (w *Writer) entry(e *Entry) {
	for _, comment := range e.Comments {
		w.line(entryIndent + comment)
	}
	head := entryIndent + string(e.Type.Tag()) + ":" + quoteName(e.Name)
	list, isList := e.Value.(ListValue)
	if !isList {
		w.line(head + "=" + scalarText(e.Value))
		return
	}
	w.line(head + " <")
	for _, item := range list {
		w.line(elementIndent + item)
	}
	w.line(entryIndent + ">")
}

// line writes s and a newline. bufio.Writer keeps the first error and
// reports it from Flush.
func (w *Writer) line(s string) {
	_, _ = w.w.WriteString(s)
	_ = w.w.WriteByte('\n')
}

func scalarText(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// quoteName wraps names holding characters other than letters, digits,
// '_', '.' and '-' in double quotes.
func quoteName(name string) string {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '-':
		default:
			return `"` + name + `"`
		}
	}
	return name
}
