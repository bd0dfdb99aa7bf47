package io

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/paveg/statdex/internal/common"
	"github.com/paveg/statdex/internal/errors"
	"github.com/pierrec/lz4/v4"
)

// Write writes names sorted with common.SortNames, one per line.
// An empty name set is rejected.
func (w *NamesWriter) Write(names []string) error {
	if len(names) == 0 {
		return errors.NewInvalidInputError("WriteNames", "there are no character names to write")
	}

	var (
		out        io.Writer = w.writer
		compressor *lz4.Writer
	)
	if w.options.Compress {
		compressor = lz4.NewWriter(w.writer)
		out = compressor
	}

	buffered := bufio.NewWriter(out)
	for _, name := range common.SortNames(names) {
		if _, err := buffered.WriteString(name); err != nil {
			return errors.NewIOError("WriteNames", "writing name", err)
		}
		if err := buffered.WriteByte('\n'); err != nil {
			return errors.NewIOError("WriteNames", "writing name", err)
		}
	}
	if err := buffered.Flush(); err != nil {
		return errors.NewIOError("WriteNames", "flushing names", err)
	}

	if compressor != nil {
		if err := compressor.Close(); err != nil {
			return errors.NewIOError("WriteNames", "closing lz4 frame", err)
		}
	}
	return nil
}

// WriteNamesFile creates (or truncates) path and writes names to it.
func WriteNamesFile(path string, names []string, options NamesOptions) (err error) {
	if strings.TrimSpace(path) == "" {
		return errors.NewInvalidInputError("WriteNames", "target file name is empty")
	}
	if len(names) == 0 {
		return errors.NewInvalidInputError("WriteNames", "there are no character names to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("WriteNames", "creating "+path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.NewIOError("WriteNames", "closing "+path, closeErr)
		}
	}()

	return NewNamesWriter(f, options).Write(names)
}
