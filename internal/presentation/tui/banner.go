package tui

import (
	"fmt"
	"io"
)

// PrintBanner writes the arbor banner to w. Colour is applied according to
// mode, so piping the server log never leaks escape codes.
func PrintBanner(w io.Writer, mode ColorMode, version string) {
	p := Profile(mode, w)
	// Greens, trunk to canopy
	lines := []struct{ text, hex string }{
		{"                _                 ", "#166534"},
		{"   __ _ _ __ __| |__   ___  _ __  ", "#15803d"},
		{"  / _` | '__/ _` '_ \\ / _ \\| '__| ", "#16a34a"},
		{" | (_| | | | (_| |_) | (_) | |    ", "#22c55e"},
		{"  \\__,_|_|  \\__,_.__/ \\___/|_|    ", "#4ade80"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.hex)))
	}
	if version != "" {
		fmt.Fprintln(w, p.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
