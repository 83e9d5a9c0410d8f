package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"dhlink/internal/ui"
)

// startSpinner shows message with a spinner unless --verbose is set, in which
// case progress is left to the loggers. The returned cleanup stops the
// spinner and prints FinalMSG, which does not need a trailing newline.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	if !verbose {
		s.Start()
	}

	cleanup := func() {
		final := ""
		if s.FinalMSG != "" {
			final = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}
		if !verbose {
			s.Stop()
		}
		if final != "" {
			fmt.Print(final)
		}
	}
	return s, cleanup
}

func succeed(s *spinner.Spinner, format string, a ...any) {
	s.FinalMSG = ui.Success.Sprint("✓") + " " + fmt.Sprintf(format, a...)
}

func fail(s *spinner.Spinner, format string, a ...any) {
	s.FinalMSG = ui.Error.Sprint("✗") + " " + fmt.Sprintf(format, a...)
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
}
