package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects when rendered diagrams are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	glyphColor = "#6b7280"
	rootColor  = "#16a34a"
)

// ParseColorMode accepts "auto", "always" and "never". Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(s)) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("unknown color mode %q", s)
}

// Profile resolves the termenv profile to use when writing to w.
// Auto mode colours only terminals and honours NO_COLOR.
func Profile(mode ColorMode, w io.Writer) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		if p := termenv.EnvColorProfile(); p != termenv.Ascii {
			return p
		}
		return termenv.ANSI
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) || termenv.EnvNoColor() {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).ColorProfile()
}

// Colorize paints the branch glyphs and indentation of a rendered diagram
// in a muted colour and the root label in the accent colour. Node content
// is left untouched. With the Ascii profile the text is returned as is.
func Colorize(rendered string, p termenv.Profile) string {
	if p == termenv.Ascii || rendered == "" {
		return rendered
	}

	lines := strings.Split(rendered, "\n")
	lines[0] = p.String(lines[0]).Foreground(p.Color(rootColor)).Bold().String()

	for i := 1; i < len(lines); i++ {
		line := lines[i]
		// The glyph is always "├── " or "└── "; cell content may itself
		// contain "── ", so only the first occurrence counts.
		idx := strings.Index(line, "── ")
		if idx < 0 {
			continue
		}
		end := idx + len("── ")
		prefix := p.String(line[:end]).Foreground(p.Color(glyphColor)).String()
		lines[i] = prefix + line[end:]
	}

	return strings.Join(lines, "\n")
}
