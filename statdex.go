// Package statdex loads a character stats dataset and answers name lookups
// and hp/speed questions over it.
// This package is the sole public API for the library.
package statdex

import (
	stdio "io"
	"log/slog"
	"sync"

	"github.com/paveg/statdex/internal/config"
	"github.com/paveg/statdex/internal/errors"
	"github.com/paveg/statdex/internal/io"
	"github.com/paveg/statdex/internal/logging"
	"github.com/paveg/statdex/internal/query"
	"github.com/paveg/statdex/internal/record"
	"github.com/paveg/statdex/internal/store"
	"github.com/paveg/statdex/internal/validation"
)

// Character is one validated dataset row.
type Character = record.Character

// Attribute selects the numeric stat a query runs over.
type Attribute = record.Attribute

// Set is an ordered, duplicate-free collection of characters.
type Set = record.Set

// Group is one bucket of characters sharing an attribute value.
type Group = query.Group

// LoadStats summarises one load.
type LoadStats = store.LoadStats

// Extrema holds the optional min/max bounds of both attributes.
type Extrema = store.Extrema

// Config is the dataset and command line configuration.
type Config = config.Config

// ExportFormat selects the encoding used by Export.
type ExportFormat = io.ExportFormat

// Queryable attributes.
const (
	HP    = record.HP
	Speed = record.Speed
)

// Export formats.
const (
	FormatCSV       = io.FormatCSV
	FormatJSON      = io.FormatJSON
	FormatJSONLines = io.FormatJSONLines
	FormatParquet   = io.FormatParquet
)

// Sentinel errors callers can match with errors.Is.
var (
	ErrNoHeader         = errors.ErrNoHeader
	ErrNoData           = errors.ErrNoData
	ErrMissingColumn    = errors.ErrMissingColumn
	ErrUnknownAttribute = errors.ErrUnknownAttribute
)

// ParseAttribute maps a user supplied attribute name to an Attribute.
func ParseAttribute(name string) (Attribute, error) {
	return record.ParseAttribute(name)
}

// ParseExportFormat maps a format name to an ExportFormat.
func ParseExportFormat(name string) (ExportFormat, error) {
	return io.ParseExportFormat(name)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return config.NewConfig()
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithConfig replaces the configuration. Zero fields take their defaults.
func WithConfig(cfg Config) Option {
	return func(d *Dataset) {
		d.cfg = cfg.WithDefaults()
	}
}

// WithLogger routes dataset logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dataset) {
		if logger != nil {
			d.logger = logging.New(logger.Handler())
		}
	}
}

// Dataset owns the loaded character data. Loads replace all derived state at
// once; queries always run against a single consistent snapshot.
type Dataset struct {
	cfg     Config
	logger  *logging.Logger
	session *store.Session

	mu        sync.Mutex
	engine    *query.Engine
	engineFor *store.Snapshot
}

// New creates an empty dataset.
func New(opts ...Option) (*Dataset, error) {
	d := &Dataset{
		cfg:    config.GetGlobalConfig(),
		logger: logging.NoopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.cfg.Validate(); err != nil {
		return nil, errors.NewInvalidInputError("New", err.Error())
	}

	columns := store.Columns{
		Name:          d.cfg.NameColumn,
		AlternateName: d.cfg.AlternateNameColumn,
		HP:            d.cfg.HPColumn,
		Speed:         d.cfg.SpeedColumn,
	}
	d.session = store.NewSession(columns, d.logger)
	return d, nil
}

// Config returns the configuration the dataset was created with.
func (d *Dataset) Config() Config { return d.cfg }

// Load replaces the dataset with the given raw records. The first record is
// the header. Rows that fail validation are skipped and counted in the
// returned stats; a missing required column empties the dataset and is
// reported as an error matching ErrMissingColumn.
func (d *Dataset) Load(lines []string) (LoadStats, error) {
	snap, err := d.session.Reload(lines)
	return snap.Stats, err
}

// LoadReader reads raw records from r and loads them.
func (d *Dataset) LoadReader(r stdio.Reader) (LoadStats, error) {
	lines, err := io.ReadLines(r)
	if err != nil {
		return LoadStats{}, err
	}
	return d.Load(lines)
}

// LoadFile reads path and loads it. An empty path loads the configured data file.
func (d *Dataset) LoadFile(path string) (LoadStats, error) {
	if path == "" {
		path = d.cfg.DataFile
	}
	lines, err := io.ReadFile(path)
	if err != nil {
		return LoadStats{}, err
	}
	return d.Load(lines)
}

// OpenFirst tries the candidate paths in order, at most MaxOpenAttempts of
// them, and loads the first one that can be read. It returns the path that
// was loaded. With no candidates it tries the configured data file.
func (d *Dataset) OpenFirst(paths ...string) (string, LoadStats, error) {
	if len(paths) == 0 {
		paths = []string{d.cfg.DataFile}
	}

	var lastErr error
	for attempt, path := range paths[:min(len(paths), d.cfg.MaxOpenAttempts)] {
		lines, err := io.ReadFile(path)
		if err != nil {
			d.logger.Warn("dataset not readable", "path", path, "attempt", attempt+1, "error", err)
			lastErr = err
			continue
		}
		stats, err := d.Load(lines)
		return path, stats, err
	}
	return "", LoadStats{}, errors.NewIOError("OpenFirst", "no readable dataset file", lastErr)
}

// Len returns the number of loaded characters.
func (d *Dataset) Len() int { return d.session.Snapshot().Len() }

// Stats returns the stats of the current load.
func (d *Dataset) Stats() LoadStats { return d.session.Snapshot().Stats }

// Fingerprint returns the hash of the raw records currently loaded.
func (d *Dataset) Fingerprint() uint64 { return d.session.Snapshot().Fingerprint }

// Extrema returns the attribute bounds of the current load.
func (d *Dataset) Extrema() Extrema { return d.session.Snapshot().Store().Extrema() }

// RequireData returns an error matching ErrNoData when nothing is loaded.
func (d *Dataset) RequireData(op string) error {
	return validation.ValidateNotEmpty(d, op)
}

// Find looks up a character by name, ignoring case.
func (d *Dataset) Find(name string) (Character, bool) {
	return d.session.Snapshot().Index().Find(name)
}

// FindRow returns the header and the raw row of the named character.
func (d *Dataset) FindRow(name string) (header, row string, ok bool) {
	snap := d.session.Snapshot()
	row, ok = snap.Index().Row(name)
	if !ok {
		return "", "", false
	}
	return snap.Store().Header(), row, true
}

// Names returns the distinct names in case-insensitive order.
func (d *Dataset) Names() []string {
	return d.session.Snapshot().Index().Names()
}

// WriteNames writes the distinct names to path, one per line. An empty path
// writes the configured results file.
func (d *Dataset) WriteNames(path string) error {
	if path == "" {
		path = d.cfg.ResultsFile
	}
	names := d.session.Snapshot().Store().Names()
	return io.WriteNamesFile(path, names, io.NamesOptions{Compress: d.cfg.CompressNames})
}

// Preview returns the first and last configured number of raw records.
func (d *Dataset) Preview() (head, tail []string) {
	return io.HeadTail(d.session.Snapshot().Raw(), d.cfg.PreviewLines)
}

func (d *Dataset) query() *query.Engine {
	snap := d.session.Snapshot()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.engineFor != snap {
		d.engine = query.FromSnapshot(snap)
		d.engineFor = snap
	}
	return d.engine
}

// ByRange returns the characters whose attribute lies in [low, high].
// Reversed bounds are swapped.
func (d *Dataset) ByRange(attr Attribute, low, high int) Set {
	return d.query().ByRange(attr, low, high)
}

// ByValue returns the characters whose attribute equals value.
func (d *Dataset) ByValue(attr Attribute, value int) Set {
	return d.query().ByValue(attr, value)
}

// Extremum returns the characters holding the minimum or maximum attribute value.
func (d *Dataset) Extremum(attr Attribute, wantMinimum bool) Set {
	return d.query().Extremum(attr, wantMinimum)
}

// Buckets groups the characters by exact attribute value.
func (d *Dataset) Buckets(attr Attribute) map[int]Set {
	return d.query().Buckets(attr)
}

// TopGroups returns up to k buckets ranked by member count, largest first
// unless preferLargest is false. Equal sizes rank the higher value first.
func (d *Dataset) TopGroups(attr Attribute, k int, preferLargest bool) []Group {
	return d.query().TopGroups(attr, k, preferLargest)
}

// LargestGroup returns the bucket with the most members.
func (d *Dataset) LargestGroup(attr Attribute) (Group, bool) {
	return d.query().LargestGroup(attr)
}

// TopValues returns the buckets of the k highest, or lowest, distinct values.
func (d *Dataset) TopValues(attr Attribute, k int, highest bool) []Group {
	return d.query().TopValues(attr, k, highest)
}

// Export writes characters to w in the given format.
func (d *Dataset) Export(w stdio.Writer, characters []Character, format ExportFormat) error {
	options := io.DefaultExportOptions()
	options.Format = format
	options.Compression = d.cfg.Compression
	return io.NewResultWriter(w, options, nil).Write(characters)
}
