package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders text in one style. The prefix and suffix are used only
// when colour is off, so the distinction survives in plain output.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats a with the formatter's style.
func (f Formatter) Sprint(a ...any) string {
	s := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + s + f.suffix
	}
	return f.color.Sprint(s)
}

// Sprintf formats according to format with the formatter's style.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// EnsureNewline appends a newline to s unless it already ends with one.
func EnsureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return true
	}
	return color.NoColor
}

var (
	// Success marks completed steps. Green.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error marks failures. Red.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning marks recoverable problems, e.g. unreadable messages. Yellow.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info is used for progress lines.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Peer formats usernames. Bold with colour, 'quoted' without.
	Peer = Formatter{color.New(color.Bold), "'", "'"}

	// Fingerprint formats key and public-value fingerprints.
	// Magenta with colour, [bracketed] without.
	Fingerprint = Formatter{color.New(color.FgMagenta), "[", "]"}

	// Muted formats secondary detail such as ids and timestamps.
	// Gray with colour, (parenthesised) without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
