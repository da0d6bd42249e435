package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/tui"
)

// Output formats.
const (
	FormatText    = "text"
	FormatMermaid = "mermaid"
)

// Settings is everything a command needs: the merged configuration plus
// flags that only make sense per invocation.
type Settings struct {
	Config config.Config
	Verify bool
	Format string
}

// Streams are the standard streams of a command. Out carries only the
// diagram; logs go to Err.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Validate checks the settings before any work is done.
func (s Settings) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	switch s.Format {
	case "", FormatText, FormatMermaid:
	default:
		return fmt.Errorf("unknown output format %q", s.Format)
	}
	return nil
}

// createLogger builds the logger for the configured level on w.
func createLogger(level string, w io.Writer) (*slog.Logger, error) {
	return logging.FromLevel(level, w)
}

func colorMode(s Settings) tui.ColorMode {
	mode, err := tui.ParseColorMode(s.Config.Render.Color)
	if err != nil {
		return tui.ColorNever
	}
	return mode
}
