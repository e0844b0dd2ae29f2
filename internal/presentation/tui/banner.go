package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the HFSM ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Cyan)
	lines := []struct {
		text, color string
	}{
		{"  _      __", "#2dd4bf"},
		{" | |__  / _|___ _ __ ", "#22d3ee"},
		{" | '_ \\| |_/ __| '_ ` _ \\", "#38bdf8"},
		{" | | | |  _\\__ \\ | | | | |", "#60a5fa"},
		{" |_| |_|_| |___/_| |_| |_|", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
