// Package ingest reads season tables from CSV into typed records.
//
// A load is all or nothing: the first malformed row aborts it and no partial
// dataset is returned.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/okian/iplstat/internal/domain/model"
)

func init() {
	gocsv.FailIfUnmatchedStructTags = true
	gocsv.FailIfDoubleHeaderNames = true
}

// LoadBatting reads the batting table at path.
func LoadBatting(ctx context.Context, path string) ([]model.BattingRecord, error) {
	return Load(ctx, path, BattingSchema)
}

// LoadBowling reads the bowling table at path.
func LoadBowling(ctx context.Context, path string) ([]model.BowlingRecord, error) {
	return Load(ctx, path, BowlingSchema)
}

// Load opens path and reads it with s.
func Load[T any](ctx context.Context, path string, s Schema[T]) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s table: %w", s.Dataset, err)
	}
	defer f.Close()

	records, err := Read(ctx, f, s)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// Read decodes a header row followed by records. Blank lines are skipped.
func Read[T any](ctx context.Context, r io.Reader, s Schema[T]) ([]T, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	t := &table{ctx: ctx, r: cr}

	records, err := s.decode(t)
	if err != nil {
		return nil, t.fail(err)
	}
	for i, rec := range records {
		if err := check(t.line(i+2), rec); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// table feeds gocsv from a csv.Reader. It trims every cell, normalizes the
// header and remembers the source line of each record.
type table struct {
	ctx    context.Context
	r      *csv.Reader
	header []string
	lines  []int
}

func (t *table) Read() ([]string, error) {
	if err := t.ctx.Err(); err != nil {
		return nil, err
	}
	cells, err := t.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, rowError(err)
	}
	line, _ := t.r.FieldPos(0)
	t.lines = append(t.lines, line)

	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	if t.header == nil {
		t.header = make([]string, len(cells))
		for i, c := range cells {
			c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
			t.header[i] = c
			cells[i] = strings.ToLower(c)
		}
	}
	return cells, nil
}

func (t *table) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		cells, err := t.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, cells)
	}
}

// line maps a gocsv line, which counts records from 1 for the header, back
// to the source line.
func (t *table) line(n int) int {
	if n < 1 || n > len(t.lines) {
		return n
	}
	return t.lines[n-1]
}

func (t *table) column(n int) string {
	if n < 1 || n > len(t.header) {
		return ""
	}
	return t.header[n-1]
}

func (t *table) fail(err error) error {
	var pe *csv.ParseError
	switch {
	case errors.Is(err, gocsv.ErrEmptyCSVFile):
		return fmt.Errorf("%w: no header row", ErrMissingColumn)
	case errors.Is(err, gocsv.ErrUnmatchedStructTags):
		return fmt.Errorf("%w: %w", ErrMissingColumn, err)
	case errors.Is(err, gocsv.ErrDoubleHeaderNames):
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	case errors.As(err, &pe):
		return &RowError{Line: t.line(pe.Line), Column: t.column(pe.Column), Err: pe.Err}
	}
	return err
}

func rowError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RowError{Line: pe.Line, Err: pe.Err}
	}
	return err
}
