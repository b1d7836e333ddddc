package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the todomcp banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _            _                       ", "#818cf8"},
		{"| |_ ___   __| | ___  _ __ ___   ___ _ __ ", "#a78bfa"},
		{"| __/ _ \\ / _` |/ _ \\| '_ ` _ \\ / __| '_ \\", "#c084fc"},
		{"| || (_) | (_| | (_) | | | | | | (__| |_) |", "#e879f9"},
		{" \\__\\___/ \\__,_|\\___/|_| |_| |_|\\___| .__/", "#f472b6"},
		{"                                    |_|", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
