// Package fasta parses FASTA-formatted sequence files.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoSequences is returned when the input holds no records.
var ErrNoSequences = errors.New("fasta: no sequences found")

// Record is one parsed FASTA entry.
type Record struct {
	// ID is the first whitespace-delimited token of the header.
	ID string
	// Description is the rest of the header line, if any.
	Description string
	// Sequence is the concatenated sequence data.
	Sequence string
}

// Parse reads FASTA records from a reader. Blank lines are skipped,
// sequence lines are concatenated, and leading content before the first
// header is rejected.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	var current *Record
	var body strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Sequence = body.String()
		records = append(records, *current)
		current = nil
		body.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimSpace(line[1:])
			id, desc, _ := strings.Cut(header, " ")
			if id == "" {
				return nil, fmt.Errorf("fasta: empty header at line %d", lineNo)
			}
			current = &Record{ID: id, Description: strings.TrimSpace(desc)}
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("fasta: sequence data before header at line %d", lineNo)
		}
		body.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fasta: read: %w", err)
	}
	flush()

	if len(records) == 0 {
		return nil, ErrNoSequences
	}
	return records, nil
}

// ParseFile reads FASTA records from a file.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}
