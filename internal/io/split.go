package io

import (
	"strings"

	"github.com/paveg/statdex/internal/common"
)

var defaultSplitter = NewSplitter(DefaultSplitOptions())

// Splitter breaks a raw record into trimmed fields.
type Splitter struct {
	options SplitOptions
}

// NewSplitter creates a splitter with the specified options
func NewSplitter(options SplitOptions) *Splitter {
	return &Splitter{options: options}
}

// Split returns the fields of record in order. The quote character toggles a
// quoted section and is dropped; delimiters inside a quoted section are kept
// literally. Unbalanced quotes are not an error: the last field is always
// flushed, so the result has one more field than there are unquoted
// delimiters, and an empty record yields a single empty field.
func (s *Splitter) Split(record string) []string {
	fields := make([]string, 0, strings.Count(record, string(s.options.Delimiter))+1)

	var current strings.Builder
	inQuotes := false

	for _, r := range record {
		switch {
		case r == s.options.Quote:
			inQuotes = !inQuotes
		case r == s.options.Delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}

// SplitRecord splits record with the default comma/double-quote options.
func SplitRecord(record string) []string {
	return defaultSplitter.Split(record)
}

// Header is a split header record that resolves column names to positions.
type Header struct {
	line   string
	fields []string
}

// NewHeader splits line with the default options.
func NewHeader(line string) *Header {
	return NewHeaderWith(defaultSplitter, line)
}

// NewHeaderWith splits line with the given splitter.
func NewHeaderWith(s *Splitter, line string) *Header {
	return &Header{line: line, fields: s.Split(line)}
}

// Line returns the raw header record.
func (h *Header) Line() string { return h.line }

// Fields returns the split header fields.
func (h *Header) Fields() []string { return h.fields }

// ResolveColumn returns the zero-based position of the first field equal to
// column ignoring case. An empty column name is never found.
func (h *Header) ResolveColumn(column string) (int, bool) {
	if column == "" {
		return -1, false
	}
	key := common.FoldKey(column)
	for i, field := range h.fields {
		if common.FoldKey(field) == key {
			return i, true
		}
	}
	return -1, false
}

// ResolveColumn splits header and resolves column in one call.
func ResolveColumn(header, column string) (int, bool) {
	if header == "" || column == "" {
		return -1, false
	}
	return NewHeader(header).ResolveColumn(column)
}
