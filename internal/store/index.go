package store

import (
	"slices"
	"strings"

	"github.com/paveg/statdex/internal/common"
	"github.com/paveg/statdex/internal/record"
)

type indexEntry struct {
	key   string
	entry Entry
}

// NameIndex answers exact, case-insensitive name lookups by binary search
// over the distinct names sorted by common.CompareKeys. The same function
// orders the index and drives the search.
type NameIndex struct {
	sorted []indexEntry
}

// NewNameIndex creates an empty index.
func NewNameIndex() *NameIndex {
	return &NameIndex{}
}

// Rebuild replaces the index with the distinct names of entries. When a name
// occurs more than once the last entry wins.
func (x *NameIndex) Rebuild(entries []Entry) {
	latest := make(map[string]Entry, len(entries))
	for _, e := range entries {
		latest[e.Character.Key()] = e
	}

	sorted := make([]indexEntry, 0, len(latest))
	for key, e := range latest {
		sorted = append(sorted, indexEntry{key: key, entry: e})
	}
	slices.SortFunc(sorted, func(a, b indexEntry) int {
		return common.CompareKeys(a.key, b.key)
	})

	x.sorted = sorted
}

// Len returns the number of distinct names.
func (x *NameIndex) Len() int { return len(x.sorted) }

func (x *NameIndex) search(query string) (Entry, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Entry{}, false
	}

	i, found := slices.BinarySearchFunc(x.sorted, common.FoldKey(query), func(e indexEntry, key string) int {
		return common.CompareKeys(e.key, key)
	})
	if !found {
		return Entry{}, false
	}
	return x.sorted[i].entry, true
}

// Find returns the character whose name equals query ignoring case and
// surrounding spaces. An absent name is reported with ok == false.
func (x *NameIndex) Find(query string) (record.Character, bool) {
	e, ok := x.search(query)
	return e.Character, ok
}

// Row returns the raw record of the character whose name equals query.
func (x *NameIndex) Row(query string) (string, bool) {
	e, ok := x.search(query)
	return e.Row, ok
}

// Contains reports whether query names a loaded character.
func (x *NameIndex) Contains(query string) bool {
	_, ok := x.search(query)
	return ok
}

// Names returns the distinct names in index order.
func (x *NameIndex) Names() []string {
	names := make([]string, len(x.sorted))
	for i, e := range x.sorted {
		names[i] = e.entry.Character.Name()
	}
	return names
}
