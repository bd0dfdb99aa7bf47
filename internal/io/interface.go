// Package io provides the input/output edges of statdex.
//
// This package includes the tolerant record splitter and header resolver used
// by the loader, the raw line source, the distinct-names sink and the writers
// that export query results.
//
// Key components:
//   - Splitter/Header for quote-aware field splitting and column lookup
//   - ReadLines/ReadFile for turning a text source into raw records
//   - NamesWriter for persisting the distinct name set
//   - ResultWriter for CSV, JSON, JSON Lines and Parquet export
//
// Memory management: Parquet export builds Apache Arrow arrays and releases
// them before returning; callers only own the io.Writer.
package io

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/statdex/internal/record"
)

const (
	// DefaultBatchSize is the default batch size for Parquet writes
	DefaultBatchSize = 1000
	// MaxLineSize bounds a single raw record
	MaxLineSize = 1 << 20
)

// ResultSink defines the interface for writing query results to a destination
type ResultSink interface {
	// Write writes the characters in the given order
	Write(characters []record.Character) error
}

// SplitOptions contains configuration options for record splitting
type SplitOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Quote toggles quoted sections and is removed from output (default: double quote)
	Quote rune
}

// DefaultSplitOptions returns default split options
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		Delimiter: ',',
		Quote:     '"',
	}
}

// ExportFormat selects the encoding used by ResultWriter
type ExportFormat string

const (
	// FormatCSV writes a header line followed by one CSV row per character
	FormatCSV ExportFormat = "csv"
	// FormatJSON writes a single JSON array
	FormatJSON ExportFormat = "json"
	// FormatJSONLines writes one JSON object per line
	FormatJSONLines ExportFormat = "jsonl"
	// FormatParquet writes a Parquet file with an Arrow schema
	FormatParquet ExportFormat = "parquet"
)

// ExportOptions contains configuration options for result export
type ExportOptions struct {
	// Format is the output encoding
	Format ExportFormat
	// Header indicates whether CSV output starts with column names
	Header bool
	// Delimiter is the CSV field delimiter
	Delimiter rune
	// Compression is the Parquet codec (snappy, gzip, lz4, zstd, uncompressed)
	Compression string
	// BatchSize for Parquet writes
	BatchSize int
}

// DefaultExportOptions returns default export options
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:      FormatCSV,
		Header:      true,
		Delimiter:   ',',
		Compression: "snappy",
		BatchSize:   DefaultBatchSize,
	}
}

// ResultWriter writes ordered query results in one of the export formats
type ResultWriter struct {
	writer  io.Writer
	options ExportOptions
	mem     memory.Allocator
}

// NewResultWriter creates a new result writer with the specified options
func NewResultWriter(writer io.Writer, options ExportOptions, mem memory.Allocator) *ResultWriter {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ResultWriter{
		writer:  writer,
		options: options,
		mem:     mem,
	}
}

// NamesOptions contains configuration options for the names sink
type NamesOptions struct {
	// Compress wraps the output in an LZ4 frame
	Compress bool
}

// NamesWriter persists a set of names, one per line, in case-insensitive order
type NamesWriter struct {
	writer  io.Writer
	options NamesOptions
}

// NewNamesWriter creates a new names writer with the specified options
func NewNamesWriter(writer io.Writer, options NamesOptions) *NamesWriter {
	return &NamesWriter{
		writer:  writer,
		options: options,
	}
}
