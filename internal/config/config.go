package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/arbor/pkg/compiler"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the full arbor configuration. Every field has a default, so a
// config file only needs the keys it changes.
type Config struct {
	CSV    CSV    `mapstructure:"csv" yaml:"csv" json:"csv"`
	Markup Markup `mapstructure:"markup" yaml:"markup" json:"markup"`
	Render Render `mapstructure:"render" yaml:"render" json:"render"`
	Log    Log    `mapstructure:"log" yaml:"log" json:"log"`
	Serve  Serve  `mapstructure:"serve" yaml:"serve" json:"serve"`
}

// CSV configures the CSV builders.
type CSV struct {
	RootLabel   string `mapstructure:"root_label" yaml:"root_label" json:"root_label"`
	HeaderLabel string `mapstructure:"header_label" yaml:"header_label" json:"header_label"`
	Layout      string `mapstructure:"layout" yaml:"layout" json:"layout"`
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter" json:"delimiter"`
	RaggedRows  string `mapstructure:"ragged_rows" yaml:"ragged_rows" json:"ragged_rows"`
	LazyQuotes  bool   `mapstructure:"lazy_quotes" yaml:"lazy_quotes" json:"lazy_quotes"`
}

// Markup configures document retrieval and conversion.
type Markup struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent" json:"user_agent"`
	Comments  bool          `mapstructure:"comments" yaml:"comments" json:"comments"`
}

// Render configures diagram output.
type Render struct {
	Style string `mapstructure:"style" yaml:"style" json:"style"`
	Color string `mapstructure:"color" yaml:"color" json:"color"`
}

// Log configures the application logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// Serve configures the HTTP binding.
type Serve struct {
	Addr string `mapstructure:"addr" yaml:"addr" json:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CSV: CSV{
			RootLabel:   compiler.DefaultRootLabel,
			HeaderLabel: compiler.DefaultHeaderLabel,
			Layout:      string(compiler.LayoutColumns),
			Delimiter:   ",",
			RaggedRows:  string(compiler.RowsStrict),
		},
		Markup: Markup{
			Timeout:   30 * time.Second,
			UserAgent: "arbor",
			Comments:  true,
		},
		Render: Render{
			Style: string(domain.StyleClassic),
			Color: "auto",
		},
		Log: Log{
			Level: "warn",
		},
		Serve: Serve{
			Addr: ":8080",
		},
	}
}

// Load reads a YAML or JSON file on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode merges a generic map (as produced by YAML or JSON) into cfg.
// Durations may be given as strings like "10s". Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks that every enumerated value is recognised.
func (c Config) Validate() error {
	if _, err := compiler.ParseLayout(c.CSV.Layout); err != nil {
		return err
	}
	if _, err := compiler.ParseRowPolicy(c.CSV.RaggedRows); err != nil {
		return err
	}
	if _, err := c.CSV.DelimiterRune(); err != nil {
		return err
	}
	if _, err := domain.ParseStyle(c.Render.Style); err != nil {
		return err
	}
	switch c.Render.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q", c.Render.Color)
	}
	if c.Markup.Timeout < 0 {
		return fmt.Errorf("markup timeout must not be negative")
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a single rune.
// "\t" and "tab" both select a tab.
func (c CSV) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", ",":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid csv delimiter %q", c.Delimiter)
	}
	return r, nil
}

// Options converts the CSV section into builder options and a layout.
func (c CSV) Options() ([]compiler.CSVOption, compiler.Layout, error) {
	layout, err := compiler.ParseLayout(c.Layout)
	if err != nil {
		return nil, "", err
	}
	policy, err := compiler.ParseRowPolicy(c.RaggedRows)
	if err != nil {
		return nil, "", err
	}
	delim, err := c.DelimiterRune()
	if err != nil {
		return nil, "", err
	}
	opts := []compiler.CSVOption{
		compiler.WithRootLabel(c.RootLabel),
		compiler.WithHeaderLabel(c.HeaderLabel),
		compiler.WithDelimiter(delim),
		compiler.WithLazyQuotes(c.LazyQuotes),
		compiler.WithRowPolicy(policy),
	}
	return opts, layout, nil
}
