// Package banner provides colored banner display functions for the nuitkactl
// CLI.
//
// All banner functions write formatted output to stdout with color-coded
// headers and separators. They mark build start, completion, failure, and
// cancellation.
package banner

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/nuitkactl/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const separator = "═══════════════════════════════════════════════════"

// PrintBuildStart displays the build banner with the script, mode, and
// interpreter about to be used.
func PrintBuildStart(script, mode, interpreter string) {
	sep := headerColor(separator)
	fmt.Println(sep)
	fmt.Println(headerColor("  nuitkactl - Nuitka build"))
	fmt.Println(sep)
	fmt.Printf("  Script:       %s\n", script)
	fmt.Printf("  Mode:         %s\n", mode)
	fmt.Printf("  Interpreter:  %s\n", interpreter)
	fmt.Println(sep)
}

// PrintBuildSuccess displays the completion banner with the elapsed time.
func PrintBuildSuccess(durationSecs int) {
	sep := successColor(separator)
	fmt.Println(sep)
	fmt.Println(successColor("  ✓ Build completed successfully"))
	fmt.Printf("  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Println(sep)
}

// PrintBuildFailed displays the failure banner with Nuitka's exit code.
func PrintBuildFailed(exitCode int, durationSecs int) {
	sep := errorColor(separator)
	fmt.Println(sep)
	fmt.Println(errorColor("  ✗ Build failed"))
	fmt.Printf("  Exit code:  %d\n", exitCode)
	fmt.Printf("  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Println(sep)
}

// PrintBuildCancelled displays the cancellation banner.
func PrintBuildCancelled(durationSecs int) {
	sep := warnColor(separator)
	fmt.Println(sep)
	fmt.Println(warnColor("  ⚠ Build cancelled"))
	fmt.Printf("  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Println(sep)
}
