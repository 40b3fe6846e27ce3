package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/nuitkactl/internal/banner"
	"github.com/CodexForgeBR/nuitkactl/internal/cli"
	"github.com/CodexForgeBR/nuitkactl/internal/config"
	"github.com/CodexForgeBR/nuitkactl/internal/diff"
	"github.com/CodexForgeBR/nuitkactl/internal/executor"
	"github.com/CodexForgeBR/nuitkactl/internal/exitcode"
	"github.com/CodexForgeBR/nuitkactl/internal/flagplan"
	"github.com/CodexForgeBR/nuitkactl/internal/logging"
	"github.com/CodexForgeBR/nuitkactl/internal/platform"
	"github.com/CodexForgeBR/nuitkactl/internal/presets"
	"github.com/CodexForgeBR/nuitkactl/internal/state"
	"github.com/CodexForgeBR/nuitkactl/internal/validate"
	sighandler "github.com/CodexForgeBR/nuitkactl/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	opts := &cli.Options{}

	rootCmd := &cobra.Command{
		Use:     "nuitkactl",
		Short:   "Configuration front-end for the Nuitka compiler",
		Long:    "nuitkactl translates a declarative build configuration into a Nuitka command line, runs it, and tracks what changed between builds.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFlags(opts); err != nil {
				return err
			}
			logging.SetVerbose(opts.Verbose)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(rootCmd, opts)
	cli.SetCustomHelp(rootCmd)

	rootCmd.AddCommand(
		newBuildCmd(opts),
		newCommandCmd(opts),
		newDiffCmd(opts),
		newValidateCmd(opts),
		newPresetsCmd(opts),
		newDoctorCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
}

// exit terminates the process with the given code unless it is Success,
// letting cobra finish normally on the happy path.
func exit(code int) error {
	if code != exitcode.Success {
		os.Exit(code)
	}
	return nil
}

// compilePlan loads the registry and configuration selected by the options
// and compiles the flag plan, logging any compiler warnings.
func compilePlan(opts *cli.Options) (*flagplan.Plan, *config.Manager, error) {
	reg, err := cli.LoadRegistry(opts)
	if err != nil {
		return nil, nil, err
	}
	mgr, err := cli.LoadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	plan, warnings := flagplan.Compile(mgr.Settings(), reg)
	for _, w := range warnings {
		logging.Warn(w)
	}
	return plan, mgr, nil
}

func newBuildCmd(opts *cli.Options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the configured script with Nuitka",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exit(runBuild(opts, dryRun))
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")
	return cmd
}

func runBuild(opts *cli.Options, dryRun bool) int {
	plan, mgr, err := compilePlan(opts)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	errs, warnings := validate.Config(mgr)
	for _, w := range warnings {
		logging.Warn(w)
	}
	if len(errs) > 0 {
		for _, e := range errs {
			logging.Error(e)
		}
		return exitcode.ConfigInvalid
	}

	interpreter := opts.Interpreter
	if interpreter == "" {
		interpreter = flagplan.DefaultInterpreter
	}
	argv := flagplan.Render(plan, interpreter)

	if dryRun {
		fmt.Println(flagplan.RenderString(plan, interpreter))
		return exitcode.Success
	}

	if !platform.HasNuitka(interpreter) {
		logging.Error(fmt.Sprintf("Nuitka is not installed for %s (try: %s -m pip install nuitka)", interpreter, interpreter))
		return exitcode.NuitkaMissing
	}

	banner.PrintBuildStart(plan.EntryScript, mgr.GetString("basic.mode"), interpreter)
	logging.Debug(flagplan.RenderString(plan, interpreter))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exec := executor.New(argv)
	exec.OnOutput = func(line string) {
		fmt.Println(line)
	}

	// The build runs on its own context. Tying it to the signal handler's
	// cancel would hard-kill Nuitka the moment a signal arrives; Stop gives
	// it SIGTERM and the grace period first.
	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupted, stopping build...")
		exec.Stop()
	})

	if err := exec.Start(context.Background()); err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}
	exec.Wait()

	secs := int(exec.Elapsed().Seconds())
	switch exec.GetStatus() {
	case executor.StatusSuccess:
		banner.PrintBuildSuccess(secs)
		if err := state.SavePlan(plan, opts.StateDir); err != nil {
			logging.Warn("could not save build plan: " + err.Error())
		}
		return exitcode.Success
	case executor.StatusCancelled:
		banner.PrintBuildCancelled(secs)
		return exitcode.Interrupted
	default:
		banner.PrintBuildFailed(exec.ExitCode(), secs)
		return exitcode.BuildFailed
	}
}

func newCommandCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "command",
		Short: "Print the Nuitka command line for the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := compilePlan(opts)
			if err != nil {
				return err
			}
			fmt.Println(flagplan.RenderString(plan, opts.Interpreter))
			return nil
		},
	}
}

func newDiffCmd(opts *cli.Options) *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare the current flag plan against the last successful build",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exit(runDiff(opts, against))
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "Compare against this configuration file instead of the last build")
	return cmd
}

func runDiff(opts *cli.Options, against string) int {
	current, _, err := compilePlan(opts)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	var baseline *flagplan.Plan
	if against != "" {
		reg, err := cli.LoadRegistry(opts)
		if err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
		other := config.New()
		if err := other.Load(against); err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
		baseline, _ = flagplan.Compile(other.Settings(), reg)
	} else {
		baseline, err = state.LoadPlan(opts.StateDir)
		if errors.Is(err, state.ErrNoPlan) {
			logging.Error("no saved build plan; run a build first or pass --against")
			return exitcode.Error
		}
		if err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
	}

	result := diff.Plans(baseline, current)
	if result.Empty() {
		logging.Success("No flag changes.")
		return exitcode.Success
	}

	for _, id := range result.Added {
		fmt.Printf("%s %s\n", color.GreenString("+"), id)
	}
	for _, id := range result.Removed {
		fmt.Printf("%s %s\n", color.RedString("-"), id)
	}
	for _, id := range result.Changed {
		fmt.Printf("%s %s\n", color.YellowString("~"), id)
	}
	for _, id := range result.ProvenanceChanged {
		fmt.Printf("%s %s (same flag, different settings)\n", color.BlueString("±"), id)
	}
	return exitcode.Success
}

func newValidateCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors and warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := cli.LoadConfig(opts)
			if err != nil {
				return err
			}
			errs, warnings := validate.Config(mgr)
			for _, w := range warnings {
				logging.Warn(w)
			}
			for _, e := range errs {
				logging.Error(e)
			}
			if len(errs) > 0 {
				return exit(exitcode.ConfigInvalid)
			}
			logging.Success("Configuration is valid.")
			return nil
		},
	}
}

func newPresetsCmd(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range presets.Builtin {
				fmt.Printf("%s\n    %s (%d settings)\n", color.CyanString(p.Name), p.Description, len(p.Applies))
			}
			return nil
		},
	}

	apply := &cobra.Command{
		Use:   "apply <name>",
		Short: "Apply a preset to the configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigFile == "" {
				return fmt.Errorf("presets apply requires --config to persist changes")
			}
			preset := presets.Find(args[0])
			if preset == nil {
				return fmt.Errorf("unknown preset: %q", args[0])
			}
			mgr, err := cli.LoadConfig(opts)
			if err != nil {
				return err
			}
			applied, err := presets.Apply(mgr, *preset)
			if err != nil {
				return err
			}
			if err := mgr.Save(opts.ConfigFile); err != nil {
				return err
			}
			for _, change := range applied {
				logging.Info(fmt.Sprintf("%s: %v → %v", change.Key, change.Old, change.New))
			}
			logging.Success(fmt.Sprintf("Applied preset %q (%d changes).", preset.Name, len(applied)))
			return nil
		},
	}
	cmd.AddCommand(apply)
	return cmd
}

func newDoctorCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report platform, compiler, and Nuitka availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := cli.LoadRegistry(opts)
			if err != nil {
				return err
			}
			interpreter := opts.Interpreter
			if interpreter == "" {
				interpreter = flagplan.DefaultInterpreter
			}

			fmt.Printf("Platform:          %s\n", platform.Name())
			fmt.Printf("Default compiler:  %s\n", platform.DefaultCompiler())
			fmt.Printf("Compilers:         %v\n", platform.AvailableCompilers())
			fmt.Printf("Nuitka:            %s\n", platform.NuitkaVersion(interpreter))
			fmt.Printf("Registry settings: %d\n", len(reg.AllSettings()))
			return nil
		},
	}
}
