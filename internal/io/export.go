package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/paveg/statdex/internal/errors"
	"github.com/paveg/statdex/internal/record"
)

var _ ResultSink = (*ResultWriter)(nil)

// Export column names, in output order.
var exportColumns = []string{"name", "alternate_name", "hp", "speed"}

// exportRow is the JSON shape of a character.
type exportRow struct {
	Name          string `json:"name"`
	AlternateName string `json:"alternate_name"`
	HP            int    `json:"hp"`
	Speed         int    `json:"speed"`
}

// ParseExportFormat resolves a format name such as "csv" or "parquet".
func ParseExportFormat(name string) (ExportFormat, error) {
	switch format := ExportFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case FormatCSV, FormatJSON, FormatJSONLines, FormatParquet:
		return format, nil
	case "ndjson":
		return FormatJSONLines, nil
	default:
		return "", errors.NewInvalidInputError("Export", fmt.Sprintf("unsupported export format: %q", name))
	}
}

// Write writes the characters in the given order
func (w *ResultWriter) Write(characters []record.Character) error {
	switch w.options.Format {
	case FormatCSV:
		return w.writeCSV(characters)
	case FormatJSON:
		return w.writeJSONArray(characters)
	case FormatJSONLines:
		return w.writeJSONLines(characters)
	case FormatParquet:
		return w.writeParquet(characters)
	default:
		return errors.NewInvalidInputError("Export", fmt.Sprintf("unsupported export format: %q", w.options.Format))
	}
}

func (w *ResultWriter) writeCSV(characters []record.Character) error {
	csvWriter := csv.NewWriter(w.writer)
	if w.options.Delimiter != 0 {
		csvWriter.Comma = w.options.Delimiter
	}

	if w.options.Header {
		if err := csvWriter.Write(exportColumns); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	for i, c := range characters {
		row := []string{
			c.Name(),
			c.AlternateName(),
			strconv.Itoa(c.HP()),
			strconv.Itoa(c.Speed()),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeJSONArray writes the characters as one JSON array.
func (w *ResultWriter) writeJSONArray(characters []record.Character) error {
	data, err := json.Marshal(toExportRows(characters))
	if err != nil {
		return fmt.Errorf("marshaling JSON array: %w", err)
	}

	_, err = w.writer.Write(data)
	return err
}

// writeJSONLines writes one JSON object per character.
func (w *ResultWriter) writeJSONLines(characters []record.Character) error {
	for _, row := range toExportRows(characters) {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshaling JSON record: %w", err)
		}

		if _, writeErr := w.writer.Write(data); writeErr != nil {
			return writeErr
		}
		if _, newlineErr := w.writer.Write([]byte("\n")); newlineErr != nil {
			return newlineErr
		}
	}

	return nil
}

func toExportRows(characters []record.Character) []exportRow {
	rows := make([]exportRow, len(characters))
	for i, c := range characters {
		rows[i] = exportRow{
			Name:          c.Name(),
			AlternateName: c.AlternateName(),
			HP:            c.HP(),
			Speed:         c.Speed(),
		}
	}
	return rows
}

// writeParquet converts the characters to an Arrow table and writes it as Parquet.
func (w *ResultWriter) writeParquet(characters []record.Character) error {
	table := w.charactersToArrowTable(characters)
	defer table.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(parquetCodec(w.options.Compression)),
		parquet.WithBatchSize(int64(max(w.options.BatchSize, 1))),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(w.mem))

	writer, err := pqarrow.NewFileWriter(table.Schema(), w.writer, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}

	if err := writer.WriteTable(table, int64(max(len(characters), 1))); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing table: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing file writer: %w", err)
	}
	return nil
}

func parquetCodec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Codecs.Gzip
	case "lz4":
		return compress.Codecs.Lz4Raw
	case "zstd":
		return compress.Codecs.Zstd
	case "uncompressed":
		return compress.Codecs.Uncompressed
	default:
		return compress.Codecs.Snappy
	}
}

// exportSchema is the Arrow schema of exported characters.
var exportSchema = arrow.NewSchema([]arrow.Field{
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "alternate_name", Type: arrow.BinaryTypes.String},
	{Name: "hp", Type: arrow.PrimitiveTypes.Int64},
	{Name: "speed", Type: arrow.PrimitiveTypes.Int64},
}, nil)

// charactersToArrowTable builds one Arrow column per exported field.
func (w *ResultWriter) charactersToArrowTable(characters []record.Character) arrow.Table {
	names := array.NewStringBuilder(w.mem)
	defer names.Release()
	alternates := array.NewStringBuilder(w.mem)
	defer alternates.Release()
	hps := array.NewInt64Builder(w.mem)
	defer hps.Release()
	speeds := array.NewInt64Builder(w.mem)
	defer speeds.Release()

	for _, c := range characters {
		names.Append(c.Name())
		alternates.Append(c.AlternateName())
		hps.Append(int64(c.HP()))
		speeds.Append(int64(c.Speed()))
	}

	arrays := []arrow.Array{
		names.NewArray(),
		alternates.NewArray(),
		hps.NewArray(),
		speeds.NewArray(),
	}
	defer func() {
		for _, arr := range arrays {
			arr.Release()
		}
	}()

	rec := array.NewRecord(exportSchema, arrays, int64(len(characters)))
	defer rec.Release()

	return array.NewTableFromRecords(exportSchema, []arrow.Record{rec})
}
