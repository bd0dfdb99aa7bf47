// Package common provides the case-folding rules shared by every name-keyed
// structure in statdex: map keys, sorting and binary search all go through
// FoldKey so that build and lookup can never disagree.
package common

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey returns the case-folded form of s.
func FoldKey(s string) string {
	// A Caser keeps state between calls, so one is created per call.
	return cases.Fold().String(s)
}

// CompareFold compares a and b by their folded forms.
// It returns -1, 0 or +1 like strings.Compare.
func CompareFold(a, b string) int {
	return CompareKeys(FoldKey(a), FoldKey(b))
}

// CompareKeys compares two keys that were already produced by FoldKey.
func CompareKeys(a, b string) int {
	return strings.Compare(a, b)
}

// EqualFold reports whether a and b are equal under FoldKey.
func EqualFold(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}

// SortNames returns a sorted copy of names ordered by CompareFold.
// Names that fold to the same key keep their byte order.
func SortNames(names []string) []string {
	type keyed struct {
		key  string
		name string
	}

	entries := make([]keyed, len(names))
	for i, name := range names {
		entries[i] = keyed{key: FoldKey(name), name: name}
	}

	slices.SortStableFunc(entries, func(a, b keyed) int {
		if c := CompareKeys(a.key, b.key); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.name
	}
	return sorted
}
