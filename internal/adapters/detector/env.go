// Package detector selects the progress output mode from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how pipeline progress is rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI draws a live stage list with Bubble Tea.
	ModeTUI
	// ModeLinear prints one status line per stage.
	ModeLinear
	// ModeQuiet prints nothing but the final result and errors.
	ModeQuiet
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	case ModeQuiet:
		return "quiet"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode.
// Interactive terminals get the TUI and CI logs get stage lines. Redirected output outside
// CI stays quiet.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	switch {
	case isTTY && !isCI:
		return ModeTUI
	case isTTY || isCI:
		return ModeLinear
	}
	return ModeQuiet
}

// ResolveMode applies the user's --output-mode flag to the detected mode.
// userFlag should be one of: "auto", "tui", "linear", "ci", "quiet", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	case "quiet":
		return ModeQuiet
	default:
		return autoDetected
	}
}
