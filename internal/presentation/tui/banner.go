package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the chainalign banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	// Teal to blue gradient, one colour per line.
	lines := []struct {
		text  string
		color string
	}{
		{`      _           _             _ _`, "#2dd4bf"},
		{`  ___| |__   __ _(_)_ __   __ _| (_) __ _ _ __`, "#22d3ee"},
		{` / __| '_ \ / _' | | '_ \ / _' | | |/ _' | '_ \`, "#38bdf8"},
		{`| (__| | | | (_| | | | | | (_| | | | (_| | | | |`, "#60a5fa"},
		{` \___|_| |_|\__,_|_|_| |_|\__,_|_|_|\__, |_| |_|`, "#818cf8"},
		{`                                    |___/`, "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
