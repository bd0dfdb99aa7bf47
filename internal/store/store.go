// Package store turns raw dataset records into the canonical character
// collection, derives the case-insensitive name index from it, and publishes
// both together as one immutable Snapshot.
package store

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/paveg/statdex/internal/common"
	"github.com/paveg/statdex/internal/errors"
	"github.com/paveg/statdex/internal/io"
	"github.com/paveg/statdex/internal/record"
	"github.com/paveg/statdex/internal/validation"
)

const opLoad = "Load"

// Columns names the four required header columns.
type Columns struct {
	Name          string
	AlternateName string
	HP            string
	Speed         string
}

// DefaultColumns returns the column names of the standard dataset.
func DefaultColumns() Columns {
	return Columns{
		Name:          "name",
		AlternateName: "japanese_name",
		HP:            "hp",
		Speed:         "speed",
	}
}

func (c Columns) list() []string {
	return []string{c.Name, c.AlternateName, c.HP, c.Speed}
}

// SkipReason explains why a data row was left out of the store.
type SkipReason int

const (
	// SkipShortRow means the row had too few fields.
	SkipShortRow SkipReason = iota
	// SkipInvalidHP means the hp field was not an integer.
	SkipInvalidHP
	// SkipInvalidSpeed means the speed field was not an integer.
	SkipInvalidSpeed
	// SkipEmptyName means the name was empty after trimming.
	SkipEmptyName
)

func (r SkipReason) String() string {
	switch r {
	case SkipShortRow:
		return "too few fields"
	case SkipInvalidHP:
		return "hp is not an integer"
	case SkipInvalidSpeed:
		return "speed is not an integer"
	case SkipEmptyName:
		return "empty name"
	default:
		return fmt.Sprintf("SkipReason(%d)", int(r))
	}
}

// SkippedRow records one rejected data row. Line is the zero-based position
// of the row in the raw records, so the header is line 0.
type SkippedRow struct {
	Line   int
	Reason SkipReason
}

// LoadStats summarises one load.
type LoadStats struct {
	Rows     int
	Accepted int
	Skipped  []SkippedRow
}

// SkippedCount returns the number of rejected rows.
func (s LoadStats) SkippedCount() int { return len(s.Skipped) }

// CountBy returns the number of rows rejected for reason.
func (s LoadStats) CountBy(reason SkipReason) int {
	n := 0
	for _, row := range s.Skipped {
		if row.Reason == reason {
			n++
		}
	}
	return n
}

// Entry pairs an accepted character with the raw record it came from.
type Entry struct {
	Character record.Character
	Row       string
	Line      int
}

// Store owns the canonical character collection of one load.
type Store struct {
	columns  Columns
	splitter *io.Splitter
	header   string
	entries  []Entry
	byName   map[string]int
	extrema  Extrema
}

// New creates an empty store that resolves the given columns on load.
func New(columns Columns) *Store {
	return &Store{
		columns:  columns,
		splitter: io.NewSplitter(io.DefaultSplitOptions()),
		byName:   make(map[string]int),
	}
}

// Load replaces all state with the records parsed from raw, whose first
// element is the header. A missing required column aborts the load and
// leaves the store empty; malformed data rows are skipped and reported in
// the returned stats.
func (s *Store) Load(raw []string) (LoadStats, error) {
	s.reset()

	if len(raw) == 0 {
		return LoadStats{}, errors.ErrNoHeader
	}

	header := io.NewHeaderWith(s.splitter, raw[0])
	if err := validation.ValidateColumns(header, opLoad, s.columns.list()...); err != nil {
		return LoadStats{}, err
	}

	nameIdx, _ := header.ResolveColumn(s.columns.Name)
	altIdx, _ := header.ResolveColumn(s.columns.AlternateName)
	hpIdx, _ := header.ResolveColumn(s.columns.HP)
	speedIdx, _ := header.ResolveColumn(s.columns.Speed)
	highest := max(nameIdx, altIdx, hpIdx, speedIdx)

	s.header = raw[0]
	stats := LoadStats{Rows: len(raw) - 1}
	s.entries = make([]Entry, 0, len(raw)-1)

	for line := 1; line < len(raw); line++ {
		fields := s.splitter.Split(raw[line])
		if len(fields) <= highest {
			stats.Skipped = append(stats.Skipped, SkippedRow{Line: line, Reason: SkipShortRow})
			continue
		}

		hp, err := strconv.Atoi(fields[hpIdx])
		if err != nil {
			stats.Skipped = append(stats.Skipped, SkippedRow{Line: line, Reason: SkipInvalidHP})
			continue
		}
		speed, err := strconv.Atoi(fields[speedIdx])
		if err != nil {
			stats.Skipped = append(stats.Skipped, SkippedRow{Line: line, Reason: SkipInvalidSpeed})
			continue
		}
		name := fields[nameIdx]
		if name == "" {
			stats.Skipped = append(stats.Skipped, SkippedRow{Line: line, Reason: SkipEmptyName})
			continue
		}

		c := record.New(name, fields[altIdx], hp, speed)
		s.entries = append(s.entries, Entry{Character: c, Row: raw[line], Line: line})
		// Last occurrence of a name wins.
		s.byName[c.Key()] = len(s.entries) - 1
		s.extrema = s.extrema.observe(c)
	}

	stats.Accepted = len(s.entries)
	return stats, nil
}

func (s *Store) reset() {
	s.header = ""
	s.entries = nil
	s.byName = make(map[string]int)
	s.extrema = Extrema{}
}

// Len returns the number of accepted characters.
func (s *Store) Len() int { return len(s.entries) }

// Header returns the raw header record of the last successful load.
func (s *Store) Header() string { return s.header }

// Extrema returns the hp and speed bounds.
func (s *Store) Extrema() Extrema { return s.extrema }

// Records returns a copy of the accepted characters in load order.
func (s *Store) Records() []record.Character {
	out := make([]record.Character, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Character
	}
	return out
}

// Entries returns a copy of the accepted entries in load order.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Lookup returns the last character loaded under name, ignoring case.
func (s *Store) Lookup(name string) (record.Character, bool) {
	i, ok := s.byName[common.FoldKey(name)]
	if !ok {
		return record.Character{}, false
	}
	return s.entries[i].Character, true
}

// Names returns the distinct names, one per case-insensitive key, spelled as
// their last occurrence. The order is unspecified.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.byName))
	for _, i := range s.byName {
		names = append(names, s.entries[i].Character.Name())
	}
	return names
}
