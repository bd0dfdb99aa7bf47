// Package query answers analytical questions over a loaded character
// collection: inclusive ranges, extrema, exact-value buckets and groups
// ranked by size. Every operation is a pure computation over an in-memory
// view; none of them mutate the collection or fail on empty input.
package query

import (
	"cmp"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/paveg/statdex/internal/record"
	"github.com/paveg/statdex/internal/store"
	"golang.org/x/exp/constraints"
)

// Group is one bucket: the characters sharing an exact attribute value.
type Group struct {
	Value   int
	Members record.Set
}

// Size returns the number of characters in the group.
func (g Group) Size() int { return g.Members.Len() }

// Engine evaluates queries over a fixed character collection.
type Engine struct {
	characters []record.Character
	extrema    store.Extrema
}

// New creates an engine over characters. Exact duplicate records collapse
// into one, matching the set semantics of every result.
func New(characters []record.Character, extrema store.Extrema) *Engine {
	unique := slices.Clone(characters)
	slices.SortFunc(unique, record.ByHPThenSpeedThenName)
	unique = slices.CompactFunc(unique, func(a, b record.Character) bool {
		return record.ByHPThenSpeedThenName(a, b) == 0
	})
	return &Engine{characters: unique, extrema: extrema}
}

// FromSnapshot creates an engine over the store of snap.
func FromSnapshot(snap *store.Snapshot) *Engine {
	return New(snap.Store().Records(), snap.Store().Extrema())
}

// Len returns the number of distinct characters.
func (e *Engine) Len() int { return len(e.characters) }

// orderedBounds swaps lo and hi when they arrive reversed.
func orderedBounds[T constraints.Integer](lo, hi T) (T, T) {
	if lo > hi {
		return hi, lo
	}
	return lo, hi
}

// ByRange returns the characters whose attr lies in [low, high]. Reversed
// bounds are swapped.
func (e *Engine) ByRange(attr record.Attribute, low, high int) record.Set {
	low, high = orderedBounds(low, high)

	var matched []record.Character
	for _, c := range e.characters {
		if v := attr.Of(c); v >= low && v <= high {
			matched = append(matched, c)
		}
	}
	return record.NewSet(attr, matched...)
}

// ByValue returns the characters whose attr equals value.
func (e *Engine) ByValue(attr record.Attribute, value int) record.Set {
	return e.ByRange(attr, value, value)
}

// Extremum returns the characters holding the minimum (or maximum) of attr.
// The result is empty when nothing is loaded.
func (e *Engine) Extremum(attr record.Attribute, wantMinimum bool) record.Set {
	value, ok := e.extrema.For(attr).Pick(wantMinimum)
	if !ok {
		return record.NewSet(attr)
	}
	return e.ByValue(attr, value)
}

// postings maps every attribute value to the ordinals of its characters.
func (e *Engine) postings(attr record.Attribute) map[int]*roaring.Bitmap {
	buckets := make(map[int]*roaring.Bitmap)
	for i, c := range e.characters {
		v := attr.Of(c)
		bm, ok := buckets[v]
		if !ok {
			bm = roaring.New()
			buckets[v] = bm
		}
		bm.Add(uint32(i))
	}
	return buckets
}

func (e *Engine) materialize(attr record.Attribute, value int, bm *roaring.Bitmap) Group {
	members := make([]record.Character, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		members = append(members, e.characters[it.Next()])
	}
	return Group{Value: value, Members: record.NewSet(attr, members...)}
}

// Buckets groups every character by its exact attr value.
func (e *Engine) Buckets(attr record.Attribute) map[int]record.Set {
	postings := e.postings(attr)
	buckets := make(map[int]record.Set, len(postings))
	for value, bm := range postings {
		buckets[value] = e.materialize(attr, value, bm).Members
	}
	return buckets
}

type bucketSize struct {
	value int
	size  uint64
	bm    *roaring.Bitmap
}

// TopGroups ranks the buckets of attr by member count, largest first when
// preferLargest is set and smallest first otherwise. Buckets of equal size
// are ordered by descending attribute value. At most k groups are returned;
// fewer when fewer buckets exist, none when k <= 0.
func (e *Engine) TopGroups(attr record.Attribute, k int, preferLargest bool) []Group {
	if k <= 0 || len(e.characters) == 0 {
		return nil
	}

	postings := e.postings(attr)
	ranked := make([]bucketSize, 0, len(postings))
	for value, bm := range postings {
		ranked = append(ranked, bucketSize{value: value, size: bm.GetCardinality(), bm: bm})
	}

	slices.SortFunc(ranked, func(a, b bucketSize) int {
		bySize := cmp.Compare(b.size, a.size)
		if !preferLargest {
			bySize = -bySize
		}
		return cmp.Or(bySize, cmp.Compare(b.value, a.value))
	})

	ranked = ranked[:min(k, len(ranked))]
	groups := make([]Group, len(ranked))
	for i, b := range ranked {
		groups[i] = e.materialize(attr, b.value, b.bm)
	}
	return groups
}

// LargestGroup returns the biggest bucket of attr, breaking ties towards the
// higher value. It reports false when nothing is loaded.
func (e *Engine) LargestGroup(attr record.Attribute) (Group, bool) {
	groups := e.TopGroups(attr, 1, true)
	if len(groups) == 0 {
		return Group{}, false
	}
	return groups[0], true
}

// TopValues returns the buckets of the k highest distinct values of attr
// (or the k lowest when highest is false), most extreme value first.
func (e *Engine) TopValues(attr record.Attribute, k int, highest bool) []Group {
	if k <= 0 || len(e.characters) == 0 {
		return nil
	}

	postings := e.postings(attr)
	values := make([]int, 0, len(postings))
	for value := range postings {
		values = append(values, value)
	}
	slices.Sort(values)
	if highest {
		slices.Reverse(values)
	}

	values = values[:min(k, len(values))]
	groups := make([]Group, len(values))
	for i, value := range values {
		groups[i] = e.materialize(attr, value, postings[value])
	}
	return groups
}
