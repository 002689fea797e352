// Package detector picks the status line mode for the current terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how status lines are presented.
type OutputMode int

const (
	// ModeAuto detects the mode from the environment.
	ModeAuto OutputMode = iota
	// ModeOverwrite redraws a single status line in place.
	ModeOverwrite
	// ModeScroll prints every status line on its own line.
	ModeScroll
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeOverwrite:
		return "overwrite"
	case ModeScroll:
		return "scroll"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode.
// Overwrite needs stdout to be a terminal outside of CI.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI")) //nolint:gosec // fd fits in int
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModeScroll
	}
	return ModeOverwrite
}

// ResolveMode applies the user flag to the detected mode.
// userFlag is one of "auto", "overwrite", "progress", "scroll", "linear", "ci" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "overwrite", "progress":
		return ModeOverwrite
	case "scroll", "linear", "ci":
		return ModeScroll
	default:
		return autoDetected
	}
}

// ParseMode converts a flag value into a mode without detection.
// Unknown values map to ModeAuto.
func ParseMode(userFlag string) OutputMode {
	return ResolveMode(ModeAuto, userFlag)
}
