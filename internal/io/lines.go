package io

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/paveg/statdex/internal/errors"
)

// ReadLines reads every line of reader in order, header first.
// Line terminators, including a trailing carriage return, are stripped.
func ReadLines(reader io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIOError("ReadLines", "reading records", err)
	}
	return lines, nil
}

// ReadFile opens path and reads it with ReadLines.
func ReadFile(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.NewInvalidInputError("ReadFile", "file name is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewIOError("ReadFile", "could not find the file "+path, err)
	}
	if info.IsDir() {
		return nil, errors.NewInvalidInputError("ReadFile", path+" is a directory")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("ReadFile", "opening "+path, err)
	}
	defer f.Close()

	return ReadLines(f)
}

// HeadTail returns the first n and the last n lines. The two slices overlap
// when lines holds fewer than 2n entries.
func HeadTail(lines []string, n int) (head, tail []string) {
	if n <= 0 || len(lines) == 0 {
		return nil, nil
	}
	head = lines[:min(n, len(lines))]
	tail = lines[max(len(lines)-n, 0):]
	return head, tail
}
