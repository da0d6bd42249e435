package compiler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Layout names a CSV flattening strategy.
type Layout string

const (
	// LayoutColumns groups cells under one node per header column.
	LayoutColumns Layout = "columns"
	// LayoutRows lists every data row, joined with " | ", under a single header node.
	LayoutRows Layout = "rows"
)

// RowSeparator joins the fields of a row in LayoutRows.
const RowSeparator = " | "

// ParseLayout converts a user supplied layout name. The empty string maps to
// LayoutColumns.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutColumns:
		return LayoutColumns, nil
	case LayoutRows:
		return LayoutRows, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLayout, s)
	}
}

// Build dispatches to Columns or Rows.
func Build(text string, layout Layout, opts ...CSVOption) (*domain.Node, error) {
	switch layout {
	case LayoutColumns, "":
		return Columns(text, opts...)
	case LayoutRows:
		return Rows(text, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownLayout, layout)
	}
}

// Columns builds a tree with one child per header column under the root;
// each column holds that column's cells in row order.
func Columns(text string, opts ...CSVOption) (*domain.Node, error) {
	cfg := newCSVConfig(opts)
	r := cfg.reader(text)

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	root := domain.NewNode(cfg.rootLabel)
	columns := make([]*domain.Node, len(header))
	for i, name := range header {
		columns[i] = domain.NewNode(name)
		root.AddChild(columns[i])
	}

	for record := 2; ; record++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record %d: %w", record, err)
		}

		if len(row) != len(header) {
			switch cfg.policy {
			case RowsSkip:
				cfg.logger.Debug("Skipping ragged csv row", "record", record, "fields", len(row), "want", len(header))
				continue
			case RowsPad:
				row = fit(row, len(header))
			default:
				return nil, fmt.Errorf("%w: record %d has %d fields, header has %d", domain.ErrRaggedRow, record, len(row), len(header))
			}
		}

		for i, cell := range row {
			columns[i].AddChild(domain.NewNode(cell))
		}
	}

	cfg.logger.Debug("Built csv column tree", "columns", len(header), "nodes", root.Size())
	return root, nil
}

// Rows builds a tree of root -> header node -> one node per data row.
// The header record is consumed and not represented.
func Rows(text string, opts ...CSVOption) (*domain.Node, error) {
	cfg := newCSVConfig(opts)
	r := cfg.reader(text)

	if _, err := readHeader(r); err != nil {
		return nil, err
	}

	root := domain.NewNode(cfg.rootLabel)
	header := domain.NewNode(cfg.headerLabel)
	root.AddChild(header)

	for record := 2; ; record++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record %d: %w", record, err)
		}
		header.AddChild(domain.NewNode(strings.Join(row, RowSeparator)))
	}

	cfg.logger.Debug("Built csv row tree", "rows", header.Len())
	return root, nil
}

func (c csvConfig) reader(text string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = c.delimiter
	r.LazyQuotes = c.lazyQuotes
	// Row width is checked against the header by the builders.
	r.FieldsPerRecord = -1
	return r
}

func readHeader(r *csv.Reader) ([]string, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	return header, nil
}

// fit pads row with empty cells or truncates it to width n.
func fit(row []string, n int) []string {
	if len(row) >= n {
		return row[:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
