package mcconfig

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

const utf8BOM = "\uFEFF"

// maxLineLength bounds a single line. Long S: values and list elements are
// legal, so this sits well above bufio's default token size.
var maxLineLength = 16 << 20

// Reader parses the categorised text format into a Document.
type Reader struct {
	scanner  *bufio.Scanner
	line     int
	warnings []*ParseError
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Reader{scanner: scanner}
}

// Parse is a convenience wrapper reading a whole document from data. The
// returned warnings describe entries that were skipped.
func Parse(data []byte) (*Document, []*ParseError, error) {
	r := NewReader(bytes.NewReader(data))
	doc, err := r.Read()
	return doc, r.Warnings(), err
}

// Warnings returns the entry-scoped problems met by the last Read.
func (r *Reader) Warnings() []*ParseError {
	return append([]*ParseError(nil), r.warnings...)
}

// Read consumes the input and returns the parsed document.
//
// Malformed entries, unknown type tags and duplicate names are recorded as
// warnings and parsing continues; for duplicates the last value wins. An
// unterminated category or list aborts parsing with a *ParseError naming the
// line that opened it. A category opened inside another is skipped up to its
// matching brace and the enclosing category stays open.
func (r *Reader) Read() (*Document, error) {
	doc := NewDocument()
	var (
		current  *Category
		openedAt int
		pending  []string
	)

	for r.next() {
		text := r.text()
		switch {
		case text == "":
			continue
		case isComment(text):
			pending = append(pending, text)
		case text == "}":
			if current == nil {
				r.warn(KindMalformedEntry, text, "closing brace outside of a category")
				continue
			}
			current.Trailer = append(current.Trailer, pending...)
			pending = nil
			current = nil
		case isEntryLine(text):
			if current == nil {
				r.warn(KindMalformedEntry, text, "entry outside of a category")
				pending = nil
				if err := r.skipListBody(text); err != nil {
					return nil, err
				}
				continue
			}
			entry, err := r.readEntry(current.Name, text)
			if err != nil {
				return nil, err
			}
			if entry == nil {
				pending = nil
				continue
			}
			entry.Comments = pending
			pending = nil
			if current.Set(entry) {
				r.warn(KindDuplicateEntry, text, "entry "+entry.Name+" redefined, last value wins")
			}
		case strings.HasSuffix(text, "{"):
			if current != nil {
				r.warn(KindMalformedEntry, text, "nested categories are not supported, block skipped")
				if err := r.skipBlock(text); err != nil {
					return nil, err
				}
				continue
			}
			name := unquote(strings.TrimSpace(strings.TrimSuffix(text, "{")))
			if name == "" {
				r.warn(KindMalformedEntry, text, "category without a name")
				continue
			}
			current = doc.AddCategory(name)
			current.Comments = append(current.Comments, pending...)
			pending = nil
			openedAt = r.line
		default:
			r.warn(KindMalformedEntry, text, "unrecognised line")
		}
	}
	if err := r.scanErr(); err != nil {
		return nil, err
	}
	if current != nil {
		return nil, r.fail(KindUnterminatedCategory, openedAt, current.Name, "category "+current.Name+" is never closed")
	}
	doc.Trailer = pending
	return doc, nil
}

func (r *Reader) next() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	return true
}

// scanErr reports a read failure against the line the scanner stopped on.
func (r *Reader) scanErr() error {
	if err := r.scanner.Err(); err != nil {
		return oops.With("line", r.line+1).Wrapf(err, "reading config at line %d", r.line+1)
	}
	return nil
}

func (r *Reader) text() string {
	line := r.scanner.Text()
	if r.line == 1 {
		line = strings.TrimPrefix(line, utf8BOM)
	}
	return strings.TrimSpace(line)
}

// readEntry parses one entry line, reading the list body when the line opens
// a list. A nil entry without error means the entry was skipped.
func (r *Reader) readEntry(category, text string) (*Entry, error) {
	tag := text[0]
	name, rest, ok := splitName(text[2:])
	if !ok {
		if err := r.skipListBody(text); err != nil {
			return nil, err
		}
		r.warn(KindMalformedEntry, text, "expected T:name=value or T:name <")
		return nil, nil
	}

	if rest == "<" {
		start := r.line
		items, err := r.readList(start)
		if err != nil {
			return nil, err
		}
		if !knownTag(tag) {
			r.warnAt(KindUnknownType, start, text, "unknown type tag "+string(tag))
			return nil, nil
		}
		if _, ok := typeForTag(tag, true); !ok {
			r.warnAt(KindMalformedEntry, start, text, "only S entries may hold a list")
			return nil, nil
		}
		return NewEntry(category, name, ListValue(items)), nil
	}

	if !knownTag(tag) {
		r.warn(KindUnknownType, text, "unknown type tag "+string(tag))
		return nil, nil
	}
	t, _ := typeForTag(tag, false)
	value := ParseScalar(t, rest[1:])
	if inv, isInvalid := value.(InvalidValue); isInvalid {
		log.WithFields(logger.Fields{
			"at":    "(Reader) readEntry",
			"line":  r.line,
			"entry": name,
			"tag":   t.String(),
			"raw":   inv.Raw,
		}).Debug("keeping entry whose value does not match its tag")
	}
	return &Entry{Category: category, Type: t, Name: name, Value: value}, nil
}

func (r *Reader) readList(start int) ([]string, error) {
	items := []string{}
	for r.next() {
		text := r.text()
		switch text {
		case ">":
			return items, nil
		case "":
			continue
		}
		items = append(items, text)
	}
	if err := r.scanErr(); err != nil {
		return nil, oops.With("list_line", start).Wrap(err)
	}
	return nil, r.fail(KindUnterminatedList, start, "", "list is never closed")
}

// skipListBody consumes the body of a list we are not going to keep.
func (r *Reader) skipListBody(text string) error {
	if !strings.HasSuffix(text, "<") {
		return nil
	}
	_, err := r.readList(r.line)
	return err
}

// skipBlock consumes a nested category up to its matching closing brace.
// Lists inside the block are read whole so their items cannot unbalance it.
func (r *Reader) skipBlock(header string) error {
	start := r.line
	depth := 1
	for r.next() {
		text := r.text()
		switch {
		case text == "}":
			depth--
			if depth == 0 {
				return nil
			}
		case isComment(text):
		case isEntryLine(text):
			if err := r.skipListBody(text); err != nil {
				return err
			}
		case strings.HasSuffix(text, "{"):
			depth++
		}
	}
	if err := r.scanErr(); err != nil {
		return err
	}
	name := unquote(strings.TrimSpace(strings.TrimSuffix(header, "{")))
	return r.fail(KindUnterminatedCategory, start, name, "category "+name+" is never closed")
}

func (r *Reader) warn(kind ErrorKind, text, detail string) {
	r.warnAt(kind, r.line, text, detail)
}

func (r *Reader) warnAt(kind ErrorKind, line int, text, detail string) {
	perr := &ParseError{Kind: kind, Line: line, Text: text, Detail: detail}
	r.warnings = append(r.warnings, perr)
	log.WithFields(logger.Fields{
		"at":     "(Reader) Read",
		"line":   line,
		"kind":   kind.String(),
		"reason": detail,
	}).Warn("skipping config line")
}

func (r *Reader) fail(kind ErrorKind, line int, text, detail string) error {
	perr := &ParseError{Kind: kind, Line: line, Text: text, Detail: detail}
	log.WithFields(logger.Fields{
		"at":     "(Reader) Read",
		"line":   line,
		"kind":   kind.String(),
		"reason": detail,
	}).Error("config parsing aborted")
	return perr
}

func isComment(text string) bool {
	return strings.HasPrefix(text, "#") || strings.HasPrefix(text, "//")
}

// isEntryLine reports whether text has the T:... shape of an entry.
func isEntryLine(text string) bool {
	return len(text) > 2 && text[1] == ':'
}

// splitName separates the entry name from the remainder of the line. The
// remainder is either "=value" or "<". Names may be double quoted; the
// closing quote is the first one followed by "=" or "<", so a quoted name may
// itself contain quotes.
func splitName(s string) (name, rest string, ok bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) {
		end := closingQuote(s)
		if end < 0 {
			return "", "", false
		}
		name = s[1:end]
		rest = strings.TrimSpace(s[end+1:])
	} else {
		i := strings.IndexAny(s, "=<")
		if i < 0 {
			return "", "", false
		}
		name = strings.TrimSpace(s[:i])
		rest = s[i:]
	}
	if name == "" {
		return "", "", false
	}
	if strings.HasPrefix(rest, "=") {
		return name, rest, true
	}
	if strings.TrimSpace(rest) == "<" {
		return name, "<", true
	}
	return "", "", false
}

// closingQuote returns the index of the quote ending a quoted name in s, or
// -1 when there is none.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		rest := strings.TrimSpace(s[i+1:])
		if strings.HasPrefix(rest, "=") || rest == "<" {
			return i
		}
	}
	return -1
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
