// Package exitcode defines named exit codes for the nuitkactl CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

// Exit code constants for nuitkactl commands.
const (
	Success       = 0   // Command completed, build succeeded
	Error         = 1   // Invalid args, file not found, misconfiguration
	ConfigInvalid = 2   // Configuration failed validation
	BuildFailed   = 3   // Nuitka exited non-zero
	NuitkaMissing = 4   // Nuitka not installed for the chosen interpreter
	Interrupted   = 130 // SIGINT/SIGTERM received, build cancelled
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case ConfigInvalid:
		return "ConfigInvalid"
	case BuildFailed:
		return "BuildFailed"
	case NuitkaMissing:
		return "NuitkaMissing"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
