// Package testutil provides the shared datasets and helpers used by tests
// across statdex packages.
//
// SampleCSV is the reference dataset: ten valid characters plus three rows
// the loader must skip (non-integer hp, empty name, too few fields).
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paveg/statdex/internal/logging"
	"github.com/paveg/statdex/internal/store"
	"github.com/stretchr/testify/require"
)

// SampleCSV is a small Pokémon-style dataset with quoted, comma-bearing fields.
const SampleCSV = `abilities,name,japanese_name,hp,speed,type1
"['Overgrow', 'Chlorophyll']",Bulbasaur,フシギダネ,45,45,grass
"['Overgrow', 'Chlorophyll']",Ivysaur,フシギソウ,60,60,grass
"['Blaze', 'Solar Power']",Charmander,ヒトカゲ,39,65,fire
"['Torrent', 'Rain Dish']",Squirtle,ゼニガメ,44,43,water
"['Static', 'Lightningrod']",Pikachu,ピカチュウ,35,90,electric
"['Keen Eye', 'Tangled Feet', 'Big Pecks']",Pidgey,ポッポ,40,56,normal
"['Shield Dust', 'Run Away']",Caterpie,キャタピー,45,45,bug
"['Run Away', 'Hustle']",Rattata,コラッタ,30,72,normal
"['Synchronize', 'Inner Focus']",Abra,ケーシィ,25,90,psychic
"['Pressure', 'Unnerve']",Mewtwo,ミュウツー,106,130,psychic
"['Overgrow']",Brokenhp,,abc,50,grass
"['Overgrow']",,Nameless,50,50,grass
"['Overgrow']",Short`

const (
	// SampleAccepted is the number of valid rows in SampleCSV.
	SampleAccepted = 10
	// SampleSkipped is the number of malformed rows in SampleCSV.
	SampleSkipped = 3
)

// SampleLines returns SampleCSV split into raw records, header first.
func SampleLines() []string {
	return strings.Split(SampleCSV, "\n")
}

// TwoRowLines returns the minimal two character dataset.
func TwoRowLines() []string {
	return []string{
		"name,japanese_name,hp,speed",
		"Bulbasaur,フシギダネ,45,45",
		"Charmander,ヒトカゲ,39,65",
	}
}

// WriteCSV writes content to a file in a per-test temporary directory and
// returns its path.
func WriteCSV(tb testing.TB, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "pokemon.csv")
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// NewSession returns a session already loaded with lines.
func NewSession(tb testing.TB, lines []string) *store.Session {
	tb.Helper()
	session := store.NewSession(store.DefaultColumns(), logging.NoopLogger())
	_, err := session.Reload(lines)
	require.NoError(tb, err)
	return session
}
