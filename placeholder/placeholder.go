// Package placeholder builds the positional token map (<f1>, <f2>, ...) from a
// list of values and applies it to text.
package placeholder

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Prefix and Suffix enclose the 1-based index of a token, e.g. "<f3>".
	Prefix = "<f"
	Suffix = ">"
)

// Token returns the placeholder for the 1-based index i.
func Token(i int) string {
	return Prefix + strconv.Itoa(i) + Suffix
}

// Entry is a single token/value pair of a Map.
type Entry struct {
	Token string
	Value string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s=%q", e.Token, e.Value)
}

// Map is an ordered token -> value mapping. Entries are kept in ascending
// index order, which is also the order Replace applies them in.
type Map struct {
	entries []Entry
}

// Build maps the i-th value (1-based) to Token(i). Values are taken as is;
// blank cells are expected to already be empty strings.
func Build(values []string) *Map {
	m := &Map{entries: make([]Entry, 0, len(values))}
	for i, v := range values {
		m.entries = append(m.entries, Entry{Token: Token(i + 1), Value: v})
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Replace substitutes every entry into text, one token at a time in index
// order, each pass running on the output of the previous one. A value
// inserted for <f1> is therefore scanned again for <f2>, <f3>, ... and
// {"<f1>": "<f2>", "<f2>": "X"} turns "<f1>" into "X".
//
// Do not swap this for strings.NewReplacer or any other single-pass
// replacement: that yields "<f2>" for the example above.
func (m *Map) Replace(text string) string {
	if m == nil {
		return text
	}
	for _, e := range m.entries {
		if strings.Contains(text, e.Token) {
			text = strings.ReplaceAll(text, e.Token, e.Value)
		}
	}
	return text
}

func (m *Map) String() string {
	var b strings.Builder
	b.WriteString("{")
	var entries []Entry
	if m != nil {
		entries = m.entries
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("}")
	return b.String()
}
