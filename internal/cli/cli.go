// Package cli provides command-line interface functionality for celconf.
package cli

import (
	"fmt"
	"strings"

	"github.com/celconf/celconf/internal/errors"
	"github.com/celconf/celconf/internal/output"
)

// Version is set at build time.
var Version = "dev"

var out = output.New()

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("celconf %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	out.SetQuiet(opts.Quiet)

	switch cmd {
	case "run":
		return cmdRun(cmdArgs, opts)
	case "validate":
		return cmdValidate(cmdArgs, opts)
	case "suites":
		return cmdSuites(cmdArgs, opts)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("run 'celconf help' for usage")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Match     string
	Quiet     bool
	Parallel  bool
	Config    string
	Container string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of the stdlib flag package because flags can
// appear anywhere in the argument list and custom error messages with usage
// hints are needed.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "--parallel":
			opts.Parallel = true
			i++
		case arg == "--match":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--match requires a value")
			}
			opts.Match = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--match="):
			opts.Match = strings.TrimPrefix(arg, "--match=")
			i++
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.Config = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.Config = strings.TrimPrefix(arg, "--config=")
			i++
		case arg == "--container":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--container requires a value")
			}
			opts.Container = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--container="):
			opts.Container = strings.TrimPrefix(arg, "--container=")
			i++
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Match != "" && opts.Match != "any" && opts.Match != "exact" {
		return fmt.Errorf("invalid --match value %q\n  valid values: any, exact\n  example: celconf run --match=exact", opts.Match)
	}
	return nil
}

func printUsage() {
	w := output.New()

	w.HelpTitle("celconf - CEL conformance suite runner")

	w.HelpSection("Usage:")
	w.HelpUsage("celconf <command> [args]")

	w.HelpSection("Commands:")
	w.HelpCommand("run [suite]", "Run all suites, or a single suite by name", 12)
	w.HelpCommand("validate", "Validate configuration and fixture suites", 12)
	w.HelpCommand("suites", "List discovered suites", 12)
	w.HelpCommand("version", "Show version information", 12)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("celconf run", "Run every suite")
	w.HelpExample("celconf run basic", "Run the basic suite only")
	w.HelpExample("celconf run --match=exact", "Require exact error categories")
	w.HelpExample("celconf validate", "Check config and fixtures without running")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("--match=<policy>", "Error match policy: any (default) or exact", 18)
	w.HelpFlag("--parallel", "Run scenarios with a worker pool", 18)
	w.HelpFlag("--container=<name>", "Default expression container", 18)
	w.HelpFlag("--config=<path>", "Path to celconf.json (default: search upward)", 18)
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", 18)
	w.HelpFlag("-h, --help", "Show this help", 18)
	w.HelpFlag("--version", "Show version", 18)

	w.HelpSection("Environment:")
	w.HelpEnvVar("CELCONF_PARALLEL=<n>", "Worker pool size for --parallel (1-256)", 20)
}
