package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Default labels used by the CSV layouts.
const (
	DefaultRootLabel   = "CSV Root"
	DefaultHeaderLabel = "Header"
)

// RowPolicy decides what the column layout does with a data row whose
// width differs from the header.
type RowPolicy string

const (
	// RowsStrict rejects ragged rows with domain.ErrRaggedRow.
	RowsStrict RowPolicy = "strict"
	// RowsPad pads short rows with empty cells and truncates long ones.
	RowsPad RowPolicy = "pad"
	// RowsSkip drops ragged rows entirely.
	RowsSkip RowPolicy = "skip"
)

// ParseRowPolicy converts a user supplied policy name. The empty string maps
// to RowsStrict.
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch RowPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RowsStrict:
		return RowsStrict, nil
	case RowsPad:
		return RowsPad, nil
	case RowsSkip:
		return RowsSkip, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownRowPolicy, s)
	}
}

// CSVOption configures the CSV builders.
type CSVOption func(*csvConfig)

type csvConfig struct {
	rootLabel   string
	headerLabel string
	delimiter   rune
	lazyQuotes  bool
	policy      RowPolicy
	logger      *slog.Logger
}

func newCSVConfig(opts []CSVOption) csvConfig {
	cfg := csvConfig{
		rootLabel:   DefaultRootLabel,
		headerLabel: DefaultHeaderLabel,
		delimiter:   ',',
		policy:      RowsStrict,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// WithRootLabel overrides the sentinel root label ("CSV Root").
func WithRootLabel(label string) CSVOption {
	return func(c *csvConfig) {
		c.rootLabel = label
	}
}

// WithHeaderLabel overrides the label of the single row-layout child ("Header").
func WithHeaderLabel(label string) CSVOption {
	return func(c *csvConfig) {
		c.headerLabel = label
	}
}

// WithDelimiter sets the field separator. Zero keeps the comma.
func WithDelimiter(r rune) CSVOption {
	return func(c *csvConfig) {
		if r != 0 {
			c.delimiter = r
		}
	}
}

// WithLazyQuotes relaxes quote handling in the tokenizer.
func WithLazyQuotes(lazy bool) CSVOption {
	return func(c *csvConfig) {
		c.lazyQuotes = lazy
	}
}

// WithRowPolicy selects how ragged rows are treated in the column layout.
func WithRowPolicy(p RowPolicy) CSVOption {
	return func(c *csvConfig) {
		c.policy = p
	}
}

// WithLogger sets the logger used for debug output while building.
func WithLogger(logger *slog.Logger) CSVOption {
	return func(c *csvConfig) {
		c.logger = logger
	}
}

// MarkupOption configures FromMarkup.
type MarkupOption func(*markupConfig)

type markupConfig struct {
	comments bool
}

// WithComments controls whether HTML comments become text leaves.
// They are kept by default; WithComments(false) drops them.
func WithComments(keep bool) MarkupOption {
	return func(c *markupConfig) {
		c.comments = keep
	}
}
