package query_test

import (
	"testing"

	"github.com/paveg/statdex/internal/query"
	"github.com/paveg/statdex/internal/record"
	"github.com/paveg/statdex/internal/store"
	"github.com/paveg/statdex/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEngine(t *testing.T) *query.Engine {
	t.Helper()
	return query.FromSnapshot(testutil.NewSession(t, testutil.SampleLines()).Snapshot())
}

func emptyEngine() *query.Engine {
	return query.FromSnapshot(store.Empty(store.DefaultColumns()))
}

func groupValues(groups []query.Group) []int {
	values := make([]int, len(groups))
	for i, g := range groups {
		values[i] = g.Value
	}
	return values
}

func TestEngine_TwoRowExample(t *testing.T) {
	engine := query.FromSnapshot(testutil.NewSession(t, testutil.TwoRowLines()).Snapshot())

	assert.Equal(t, []string{"Charmander"}, engine.Extremum(record.HP, true).Names())
	assert.Equal(t, []string{"Charmander"}, engine.Extremum(record.Speed, false).Names())
	assert.Equal(t, []string{"Charmander", "Bulbasaur"}, engine.ByRange(record.HP, 39, 45).Names())
}

func TestEngine_ByRange(t *testing.T) {
	engine := sampleEngine(t)

	t.Run("inclusive bounds ordered by hp then speed then name", func(t *testing.T) {
		set := engine.ByRange(record.HP, 39, 45)
		assert.Equal(t, []string{"Charmander", "Pidgey", "Squirtle", "Bulbasaur", "Caterpie"}, set.Names())
	})

	t.Run("reversed bounds are swapped", func(t *testing.T) {
		assert.Equal(t, engine.ByRange(record.HP, 39, 45).Names(), engine.ByRange(record.HP, 45, 39).Names())
	})

	t.Run("speed range is ordered by speed", func(t *testing.T) {
		set := engine.ByRange(record.Speed, 60, 90)
		assert.Equal(t, []string{"Ivysaur", "Charmander", "Rattata", "Abra", "Pikachu"}, set.Names())
		assert.Equal(t, record.Speed, set.Attribute())
	})

	t.Run("no match", func(t *testing.T) {
		assert.True(t, engine.ByRange(record.HP, 1000, 2000).IsEmpty())
	})

	t.Run("exact value", func(t *testing.T) {
		assert.Equal(t, []string{"Bulbasaur", "Caterpie"}, engine.ByValue(record.HP, 45).Names())
	})
}

func TestEngine_Extremum(t *testing.T) {
	engine := sampleEngine(t)

	tests := []struct {
		name        string
		attr        record.Attribute
		wantMinimum bool
		expected    []string
	}{
		{name: "lowest hp", attr: record.HP, wantMinimum: true, expected: []string{"Abra"}},
		{name: "highest hp", attr: record.HP, wantMinimum: false, expected: []string{"Mewtwo"}},
		{name: "slowest", attr: record.Speed, wantMinimum: true, expected: []string{"Squirtle"}},
		{name: "fastest", attr: record.Speed, wantMinimum: false, expected: []string{"Mewtwo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.Extremum(tt.attr, tt.wantMinimum).Names())
		})
	}

	t.Run("ties return every holder", func(t *testing.T) {
		engine := query.FromSnapshot(testutil.NewSession(t, []string{
			"name,japanese_name,hp,speed",
			"Zubat,,40,55",
			"abra,,25,90",
			"Ekans,,35,55",
		}).Snapshot())
		assert.Equal(t, []string{"Ekans", "Zubat"}, engine.Extremum(record.Speed, true).Names())
	})
}

func TestEngine_Buckets(t *testing.T) {
	engine := sampleEngine(t)

	buckets := engine.Buckets(record.Speed)
	assert.Len(t, buckets, 8)
	assert.Equal(t, []string{"Bulbasaur", "Caterpie"}, buckets[45].Names())
	assert.Equal(t, []string{"Abra", "Pikachu"}, buckets[90].Names())
	assert.Equal(t, []string{"Mewtwo"}, buckets[130].Names())

	total := 0
	for _, set := range buckets {
		total += set.Len()
	}
	assert.Equal(t, testutil.SampleAccepted, total)
}

func TestEngine_TopGroups(t *testing.T) {
	engine := sampleEngine(t)

	t.Run("largest first with ties broken by higher value", func(t *testing.T) {
		groups := engine.TopGroups(record.Speed, 3, true)
		require.Len(t, groups, 3)
		assert.Equal(t, []int{90, 45, 130}, groupValues(groups))
		assert.Equal(t, []int{2, 2, 1}, []int{groups[0].Size(), groups[1].Size(), groups[2].Size()})
		assert.Equal(t, []string{"Abra", "Pikachu"}, groups[0].Members.Names())
	})

	t.Run("sizes never increase and equal sizes have descending values", func(t *testing.T) {
		groups := engine.TopGroups(record.Speed, 100, true)
		for i := 1; i < len(groups); i++ {
			assert.GreaterOrEqual(t, groups[i-1].Size(), groups[i].Size())
			if groups[i-1].Size() == groups[i].Size() {
				assert.Greater(t, groups[i-1].Value, groups[i].Value)
			}
		}
	})

	t.Run("fewer groups than k returns all of them", func(t *testing.T) {
		groups := engine.TopGroups(record.Speed, 100, true)
		assert.Len(t, groups, 8)
	})

	t.Run("smallest first keeps the value tie break", func(t *testing.T) {
		groups := engine.TopGroups(record.HP, 3, false)
		assert.Equal(t, []int{106, 60, 44}, groupValues(groups))
	})

	t.Run("non-positive k", func(t *testing.T) {
		assert.Empty(t, engine.TopGroups(record.Speed, 0, true))
		assert.Empty(t, engine.TopGroups(record.Speed, -1, true))
	})
}

func TestEngine_LargestGroup(t *testing.T) {
	engine := sampleEngine(t)

	t.Run("speed tie resolves to the higher value", func(t *testing.T) {
		group, ok := engine.LargestGroup(record.Speed)
		require.True(t, ok)
		assert.Equal(t, 90, group.Value)
	})

	t.Run("unique largest group", func(t *testing.T) {
		group, ok := engine.LargestGroup(record.HP)
		require.True(t, ok)
		assert.Equal(t, 45, group.Value)
		assert.Equal(t, []string{"Bulbasaur", "Caterpie"}, group.Members.Names())
	})
}

func TestEngine_TopValues(t *testing.T) {
	engine := sampleEngine(t)

	t.Run("three fastest speeds", func(t *testing.T) {
		groups := engine.TopValues(record.Speed, 3, true)
		assert.Equal(t, []int{130, 90, 72}, groupValues(groups))
		assert.Equal(t, []string{"Abra", "Pikachu"}, groups[1].Members.Names())
	})

	t.Run("three slowest speeds", func(t *testing.T) {
		groups := engine.TopValues(record.Speed, 3, false)
		assert.Equal(t, []int{43, 45, 56}, groupValues(groups))
	})

	t.Run("k larger than the number of values", func(t *testing.T) {
		assert.Len(t, engine.TopValues(record.HP, 50, true), 9)
	})
}

func TestEngine_DuplicateRecordsCollapse(t *testing.T) {
	engine := query.FromSnapshot(testutil.NewSession(t, []string{
		"name,japanese_name,hp,speed",
		"Ditto,メタモン,48,48",
		"Ditto,メタモン,48,48",
		"Mew,ミュウ,100,100",
	}).Snapshot())

	assert.Equal(t, 2, engine.Len())
	group, ok := engine.LargestGroup(record.Speed)
	require.True(t, ok)
	assert.Equal(t, 100, group.Value, "both buckets hold one distinct record")
}

func TestEngine_Empty(t *testing.T) {
	engine := emptyEngine()

	for _, attr := range record.Attributes {
		assert.True(t, engine.ByRange(attr, 0, 100).IsEmpty())
		assert.True(t, engine.Extremum(attr, true).IsEmpty())
		assert.True(t, engine.Extremum(attr, false).IsEmpty())
		assert.Empty(t, engine.Buckets(attr))
		assert.Empty(t, engine.TopGroups(attr, 3, true))
		assert.Empty(t, engine.TopValues(attr, 3, true))

		_, ok := engine.LargestGroup(attr)
		assert.False(t, ok)
	}
}
