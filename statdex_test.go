package statdex_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paveg/statdex"
	"github.com/paveg/statdex/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleDataset(t *testing.T, opts ...statdex.Option) *statdex.Dataset {
	t.Helper()
	ds, err := statdex.New(opts...)
	require.NoError(t, err)
	stats, err := ds.Load(testutil.SampleLines())
	require.NoError(t, err)
	require.Equal(t, testutil.SampleAccepted, stats.Accepted)
	return ds
}

func TestDataset_New(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		ds, err := statdex.New()
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
		assert.Equal(t, "pokemon.csv", ds.Config().DataFile)
	})

	t.Run("rejects an invalid configuration", func(t *testing.T) {
		cfg := statdex.DefaultConfig()
		cfg.ExportFormat = "xml"

		_, err := statdex.New(statdex.WithConfig(cfg))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ExportFormat")
	})
}

func TestDataset_Load(t *testing.T) {
	t.Run("counts accepted and skipped rows", func(t *testing.T) {
		ds := newSampleDataset(t)

		assert.Equal(t, testutil.SampleAccepted, ds.Len())
		assert.Equal(t, testutil.SampleSkipped, ds.Stats().SkippedCount())
		assert.NotZero(t, ds.Fingerprint())
		assert.NoError(t, ds.RequireData("Query"))
	})

	t.Run("missing column empties the dataset", func(t *testing.T) {
		ds := newSampleDataset(t)

		_, err := ds.Load([]string{"name,hp,speed", "Bulbasaur,45,45"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, statdex.ErrMissingColumn))
		assert.Equal(t, 0, ds.Len())
		assert.Empty(t, ds.Names())

		err = ds.RequireData("Query")
		assert.True(t, errors.Is(err, statdex.ErrNoData))
	})

	t.Run("no header", func(t *testing.T) {
		ds, err := statdex.New()
		require.NoError(t, err)

		_, err = ds.Load(nil)
		assert.True(t, errors.Is(err, statdex.ErrNoHeader))
	})

	t.Run("reloading identical input is idempotent", func(t *testing.T) {
		ds := newSampleDataset(t)
		names, extrema, fingerprint := ds.Names(), ds.Extrema(), ds.Fingerprint()

		_, err := ds.Load(testutil.SampleLines())
		require.NoError(t, err)

		assert.Equal(t, names, ds.Names())
		assert.Equal(t, extrema, ds.Extrema())
		assert.Equal(t, fingerprint, ds.Fingerprint())
		assert.Equal(t, testutil.SampleAccepted, ds.Len())
	})

	t.Run("from a reader", func(t *testing.T) {
		ds, err := statdex.New()
		require.NoError(t, err)

		stats, err := ds.LoadReader(strings.NewReader(testutil.SampleCSV))
		require.NoError(t, err)
		assert.Equal(t, testutil.SampleAccepted, stats.Accepted)
	})
}

func TestDataset_OpenFirst(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteCSV(t, testutil.SampleCSV)

	t.Run("falls back to the second candidate", func(t *testing.T) {
		ds, err := statdex.New()
		require.NoError(t, err)

		path, stats, err := ds.OpenFirst(filepath.Join(dir, "missing.csv"), good)
		require.NoError(t, err)
		assert.Equal(t, good, path)
		assert.Equal(t, testutil.SampleAccepted, stats.Accepted)
	})

	t.Run("stops after the configured attempts", func(t *testing.T) {
		ds, err := statdex.New()
		require.NoError(t, err)

		_, _, err = ds.OpenFirst(filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv"), good)
		require.Error(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("uses the configured data file by default", func(t *testing.T) {
		cfg := statdex.DefaultConfig()
		cfg.DataFile = good
		ds, err := statdex.New(statdex.WithConfig(cfg))
		require.NoError(t, err)

		path, _, err := ds.OpenFirst()
		require.NoError(t, err)
		assert.Equal(t, good, path)
	})
}

func TestDataset_Lookup(t *testing.T) {
	ds := newSampleDataset(t)

	c, ok := ds.Find("  pIKAchu ")
	require.True(t, ok)
	assert.Equal(t, "Pikachu", c.Name())
	assert.Equal(t, "Pikachu / ピカチュウ | HP: 35 | Speed: 90", c.String())

	_, ok = ds.Find("Missingno")
	assert.False(t, ok)

	header, row, ok := ds.FindRow("BULBASAUR")
	require.True(t, ok)
	assert.Equal(t, testutil.SampleLines()[0], header)
	assert.Equal(t, testutil.SampleLines()[1], row)

	assert.Equal(t, []string{
		"Abra", "Bulbasaur", "Caterpie", "Charmander", "Ivysaur",
		"Mewtwo", "Pidgey", "Pikachu", "Rattata", "Squirtle",
	}, ds.Names())
}

func TestDataset_Queries(t *testing.T) {
	ds := newSampleDataset(t)

	t.Run("range with reversed bounds", func(t *testing.T) {
		set := ds.ByRange(statdex.HP, 45, 39)
		assert.Equal(t, []string{"Charmander", "Pidgey", "Squirtle", "Bulbasaur", "Caterpie"}, set.Names())
	})

	t.Run("exact value", func(t *testing.T) {
		assert.Equal(t, []string{"Abra", "Pikachu"}, ds.ByValue(statdex.Speed, 90).Names())
	})

	t.Run("extremum", func(t *testing.T) {
		assert.Equal(t, []string{"Abra"}, ds.Extremum(statdex.HP, true).Names())
		assert.Equal(t, []string{"Mewtwo"}, ds.Extremum(statdex.Speed, false).Names())
	})

	t.Run("groups", func(t *testing.T) {
		assert.Len(t, ds.Buckets(statdex.Speed), 8)

		groups := ds.TopGroups(statdex.Speed, 3, true)
		require.Len(t, groups, 3)
		assert.Equal(t, 90, groups[0].Value)
		assert.Equal(t, 45, groups[1].Value)

		largest, ok := ds.LargestGroup(statdex.HP)
		require.True(t, ok)
		assert.Equal(t, 45, largest.Value)
		assert.Equal(t, []string{"Bulbasaur", "Caterpie"}, largest.Members.Names())
	})

	t.Run("top values", func(t *testing.T) {
		groups := ds.TopValues(statdex.Speed, 3, false)
		require.Len(t, groups, 3)
		assert.Equal(t, 43, groups[0].Value)
	})

	t.Run("queries follow a reload", func(t *testing.T) {
		other := newSampleDataset(t)
		_, err := other.Load(testutil.TwoRowLines())
		require.NoError(t, err)

		assert.Equal(t, []string{"Charmander"}, other.Extremum(statdex.Speed, false).Names())
		assert.Equal(t, []string{"Charmander", "Bulbasaur"}, other.ByRange(statdex.HP, 39, 45).Names())
	})
}

func TestDataset_EmptyQueries(t *testing.T) {
	ds, err := statdex.New()
	require.NoError(t, err)

	assert.True(t, ds.ByRange(statdex.HP, 0, 1000).IsEmpty())
	assert.True(t, ds.Extremum(statdex.Speed, true).IsEmpty())
	assert.Empty(t, ds.Buckets(statdex.HP))
	assert.Empty(t, ds.TopGroups(statdex.Speed, 3, true))
	_, ok := ds.LargestGroup(statdex.Speed)
	assert.False(t, ok)
	assert.Empty(t, ds.Names())

	head, tail := ds.Preview()
	assert.Nil(t, head)
	assert.Nil(t, tail)
}

func TestDataset_Preview(t *testing.T) {
	ds := newSampleDataset(t)
	lines := testutil.SampleLines()

	head, tail := ds.Preview()
	assert.Equal(t, lines[:7], head)
	assert.Equal(t, lines[len(lines)-7:], tail)
}

func TestDataset_WriteNames(t *testing.T) {
	t.Run("writes sorted distinct names", func(t *testing.T) {
		ds := newSampleDataset(t)
		path := filepath.Join(t.TempDir(), "names.txt")

		require.NoError(t, ds.WriteNames(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		assert.Equal(t, ds.Names(), lines)
	})

	t.Run("rejects an empty dataset", func(t *testing.T) {
		ds, err := statdex.New()
		require.NoError(t, err)

		assert.Error(t, ds.WriteNames(filepath.Join(t.TempDir(), "names.txt")))
	})
}

func TestDataset_Export(t *testing.T) {
	ds := newSampleDataset(t)
	set := ds.ByValue(statdex.Speed, 45)

	var buf bytes.Buffer
	require.NoError(t, ds.Export(&buf, set.Items(), statdex.FormatCSV))
	assert.Equal(t,
		"name,alternate_name,hp,speed\nBulbasaur,フシギダネ,45,45\nCaterpie,キャタピー,45,45\n",
		buf.String())
}

func TestDataset_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	newSampleDataset(t, statdex.WithLogger(logger))

	assert.Contains(t, buf.String(), "dataset loaded")
	assert.Contains(t, buf.String(), "load_id=")
}

func TestParseAttribute(t *testing.T) {
	attr, err := statdex.ParseAttribute("Speed")
	require.NoError(t, err)
	assert.Equal(t, statdex.Speed, attr)

	_, err = statdex.ParseAttribute("attack")
	assert.True(t, errors.Is(err, statdex.ErrUnknownAttribute))
}
