// Package detector inspects the host environment: the terminal for output
// mode selection and the PATH for the C/C++ toolchain.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how logs and progress are rendered.
type OutputMode int

const (
	// ModeAuto picks a mode from the environment.
	ModeAuto OutputMode = iota
	// ModePretty renders colored logs and span progress lines.
	ModePretty
	// ModeJSON renders structured JSON logs without progress lines.
	ModeJSON
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeJSON when stdout is not a terminal or a CI
// environment is detected, ModePretty otherwise.
func DetectEnvironment() OutputMode {
	return detectMode(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detectMode(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies the --output-mode flag on top of the detected mode.
// Unknown values fall back to the detected mode.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty", "linear":
		return ModePretty
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
