package record

import (
	"cmp"
	"slices"
	"strings"
)

// Comparator orders two characters, returning -1, 0 or +1.
type Comparator func(a, b Character) int

// ByHPThenSpeedThenName orders by hp, then speed, then name ignoring case.
func ByHPThenSpeedThenName(a, b Character) int {
	return cmp.Or(
		cmp.Compare(a.hp, b.hp),
		cmp.Compare(a.speed, b.speed),
		compareNames(a, b),
	)
}

// BySpeedThenHPThenName orders by speed, then hp, then name ignoring case.
func BySpeedThenHPThenName(a, b Character) int {
	return cmp.Or(
		cmp.Compare(a.speed, b.speed),
		cmp.Compare(a.hp, b.hp),
		compareNames(a, b),
	)
}

// OrderFor returns the canonical comparator whose primary key is attr.
func OrderFor(attr Attribute) Comparator {
	if attr == Speed {
		return BySpeedThenHPThenName
	}
	return ByHPThenSpeedThenName
}

// compareNames breaks ties on the folded name first. Names that only differ
// in case fall back to byte order, then to the alternate name, which keeps
// the ordering total.
func compareNames(a, b Character) int {
	return cmp.Or(
		strings.Compare(a.key, b.key),
		strings.Compare(a.name, b.name),
		strings.Compare(a.alternateName, b.alternateName),
	)
}

// Set is an ordered collection of distinct characters.
type Set struct {
	attr  Attribute
	items []Character
}

// NewSet returns the characters ordered by OrderFor(attr) with exact
// duplicates removed. The input slice is not modified.
func NewSet(attr Attribute, characters ...Character) Set {
	items := slices.Clone(characters)
	order := OrderFor(attr)
	slices.SortFunc(items, order)
	items = slices.CompactFunc(items, func(a, b Character) bool {
		return order(a, b) == 0
	})
	return Set{attr: attr, items: items}
}

// Attribute returns the primary ordering attribute of the set.
func (s Set) Attribute() Attribute { return s.attr }

// Len returns the number of characters in the set.
func (s Set) Len() int { return len(s.items) }

// IsEmpty reports whether the set has no characters.
func (s Set) IsEmpty() bool { return len(s.items) == 0 }

// At returns the i-th character in order.
func (s Set) At(i int) Character { return s.items[i] }

// Items returns a copy of the ordered characters.
func (s Set) Items() []Character { return slices.Clone(s.items) }

// Names returns the character names in order.
func (s Set) Names() []string {
	names := make([]string, len(s.items))
	for i, c := range s.items {
		names[i] = c.name
	}
	return names
}

// Strings returns the single-line summary of every character in order.
func (s Set) Strings() []string {
	lines := make([]string, len(s.items))
	for i, c := range s.items {
		lines[i] = c.String()
	}
	return lines
}
