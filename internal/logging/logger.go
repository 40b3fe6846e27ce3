// Package logging provides colored, leveled log output for the nuitkactl CLI.
//
// All levels write to stderr: stdout is reserved for command results, such as
// rendered Nuitka command lines, diff listings, and streamed build output.
// Debug output is suppressed unless verbose mode is enabled via
// SetVerbose(true).
package logging

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// verbose controls whether Debug() produces output.
var verbose bool

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	verbose = v
}

// emit writes one prefixed line to stderr with the level tag colored.
func emit(paint func(a ...interface{}) string, tag, msg string) {
	fmt.Fprintln(os.Stderr, paint(tag)+" "+msg)
}

// Info reports progress in blue.
func Info(msg string) {
	emit(infoPrefix, "[INFO]", msg)
}

// Success reports a completed operation in green.
func Success(msg string) {
	emit(successPrefix, "[SUCCESS]", msg)
}

// Warn reports a non-fatal problem in yellow, such as an advisory validation
// finding or an ignored mapping rule.
func Warn(msg string) {
	emit(warnPrefix, "[WARN]", msg)
}

// Error reports a failure in red.
func Error(msg string) {
	emit(errorPrefix, "[ERROR]", msg)
}

// Debug reports diagnostic detail, only when verbose mode is enabled.
func Debug(msg string) {
	if !verbose {
		return
	}
	emit(infoPrefix, "[DEBUG]", msg)
}

// FormatDuration converts a duration in seconds to a human-readable string.
//
// Examples:
//
//	FormatDuration(0)    => "0s"
//	FormatDuration(45)   => "45s"
//	FormatDuration(90)   => "1m 30s"
//	FormatDuration(3661) => "1h 1m 1s"
//	FormatDuration(7200) => "2h 0m 0s"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		m := seconds / 60
		s := seconds % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
