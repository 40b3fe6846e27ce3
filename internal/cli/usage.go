package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `nuitkactl - Configuration front-end for the Nuitka compiler

USAGE
  nuitkactl <command> [flags]

COMMANDS
  build        Compile the configured script with Nuitka
  command      Print the Nuitka command line for the current configuration
  diff         Compare the current flag plan against the last successful build
  validate     Check the configuration for errors and warnings
  presets      List built-in presets, or apply one with 'presets apply <name>'
  doctor       Report platform, compiler, and Nuitka availability

GLOBAL FLAGS
  -c, --config <path>        Build configuration file (JSON); defaults merged underneath
      --registry <path>      Alternative setting registry (JSON)
      --interpreter <path>   Python interpreter used to invoke Nuitka (default: python)
      --state-dir <path>     State directory for the last build plan (default: .nuitkactl)
  -v, --verbose              Enable debug output
  -h, --help                 Show this help text
      --version              Show version, commit, build date

EXIT CODES
  0   Success         Command completed, build succeeded
  1   Error           Invalid arguments, file not found, misconfiguration
  2   ConfigInvalid   Configuration failed validation
  3   BuildFailed     Nuitka exited non-zero
  4   NuitkaMissing   Nuitka not installed for the chosen interpreter
  130 Interrupted     Build cancelled by SIGINT/SIGTERM

EXAMPLES
  # Show the command that would run, without running it
  nuitkactl command --config myapp.json

  # Build with a saved configuration
  nuitkactl build --config myapp.json

  # See what changed since the last successful build
  nuitkactl diff --config myapp.json

  # Apply a preset and save the result
  nuitkactl presets apply "Onefile Distribution" --config myapp.json

For more information, see: https://github.com/CodexForgeBR/nuitkactl
`

// SetCustomHelp configures the root command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
