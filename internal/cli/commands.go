package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/celconf/celconf/internal/classify"
	"github.com/celconf/celconf/internal/config"
	"github.com/celconf/celconf/internal/errors"
	"github.com/celconf/celconf/internal/eval"
	"github.com/celconf/celconf/internal/fixture"
	"github.com/celconf/celconf/internal/runner"
	"github.com/celconf/celconf/internal/schema"
)

// project is a loaded celconf project: the validated configuration and the
// directory it was found in.
type project struct {
	root string
	cfg  *config.Config
}

// loadProject resolves the configuration path (explicit --config or upward
// search), loads and validates it, and prints any warnings.
func loadProject(opts *GlobalOptions) (*project, error) {
	var configPath, root string

	if opts.Config != "" {
		abs, err := filepath.Abs(opts.Config)
		if err != nil {
			return nil, err
		}
		configPath = abs
		root = filepath.Dir(abs)
	} else {
		found, err := config.FindRoot()
		if err != nil {
			return nil, err
		}
		root = found
		configPath = filepath.Join(found, config.ConfigFileName)
	}

	cfg, warnings, err := config.LoadAndValidate(configPath)
	for _, w := range warnings {
		out.WarningSimple("%s", w)
	}
	if err != nil {
		return nil, err
	}

	return &project{root: root, cfg: cfg}, nil
}

// runOptions merges flag overrides onto the configured defaults.
func (p *project) runOptions(opts *GlobalOptions) (runner.Options, error) {
	match := p.cfg.Match
	if opts.Match != "" {
		match = opts.Match
	}
	policy, err := classify.ParsePolicy(match)
	if err != nil {
		return runner.Options{}, err
	}

	ro := runner.Options{
		Policy:   policy,
		Parallel: opts.Parallel || p.cfg.Run.Parallel,
	}
	ro.Container = p.cfg.Run.Container
	if opts.Container != "" {
		ro.Container = opts.Container
	}
	return ro, nil
}

func (p *project) loadSuites() ([]*fixture.Suite, error) {
	dir := p.cfg.Suites.Directory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.root, dir)
	}
	return fixture.LoadDir(dir, p.cfg.Suites.Pattern)
}

// cmdRun loads the project's suites and executes them.
func cmdRun(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printRunUsage()
		return 0
	}
	if len(args) > 1 {
		out.ErrorPrefix("run takes at most one suite name, got %d arguments", len(args))
		return errors.ExitConfigError
	}

	proj, err := loadProject(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	ro, err := proj.runOptions(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	suites, err := proj.loadSuites()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	if len(args) == 1 {
		suites = filterSuites(suites, args[0])
		if len(suites) == 0 {
			out.ErrorPrefix("no suite named %q", args[0])
			return errors.ExitFixtureError
		}
	}

	if len(suites) == 0 {
		out.WarningSimple("no suites found in %s", proj.cfg.Suites.Directory)
		return errors.ExitSuccess
	}

	r := runner.New(eval.New(), out)
	counts := r.RunAll(context.Background(), suites, ro)

	printRunSummary(counts, ro.Policy)

	if !counts.Ok() {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}

// cmdValidate checks the configuration and every fixture suite without
// evaluating anything.
func cmdValidate(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printValidateUsage()
		return 0
	}

	var configPath string
	if opts.Config != "" {
		configPath = opts.Config
	} else {
		root, err := config.FindRoot()
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitConfigError
		}
		configPath = filepath.Join(root, config.ConfigFileName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if err := schema.ValidateConfig(data); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	proj, err := loadProject(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	out.Success("configuration is valid")

	suites, err := proj.loadSuites()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	total := 0
	for _, s := range suites {
		total += len(s.Scenarios)
	}
	out.Success("%d suites with %d scenarios are valid", len(suites), total)
	return errors.ExitSuccess
}

// cmdSuites lists the discovered suites and their scenario counts.
func cmdSuites(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printSuitesUsage()
		return 0
	}

	proj, err := loadProject(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	suites, err := proj.loadSuites()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	if len(suites) == 0 {
		out.WarningSimple("no suites found in %s", proj.cfg.Suites.Directory)
		return errors.ExitSuccess
	}

	out.Section("Suites")
	items := make([]string, 0, len(suites))
	for _, s := range suites {
		items = append(items, fmt.Sprintf("%s (%d scenarios)", s.Name, len(s.Scenarios)))
	}
	out.List(items)
	return errors.ExitSuccess
}

func filterSuites(suites []*fixture.Suite, name string) []*fixture.Suite {
	var filtered []*fixture.Suite
	for _, s := range suites {
		if s.Name == name {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

func printRunUsage() {
	w := out

	w.HelpTitle("celconf run - execute conformance suites")

	w.HelpSection("Usage:")
	w.HelpUsage("celconf run [suite] [options]")

	w.HelpSection("Description:")
	w.Println("  When a suite name is given, runs that suite only.")
	w.Println("  Without one, runs every suite discovered under the configured directory.")

	w.HelpSection("Arguments:")
	w.HelpFlag("[suite]", "Suite name to run (optional)", 16)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	w.HelpExample("celconf run", fmt.Sprintf("%s all suites", titleCase.String("run")))
	w.HelpExample("celconf run basic", fmt.Sprintf("%s the basic suite only", titleCase.String("run")))
	w.HelpExample("celconf run --parallel", fmt.Sprintf("%s with a worker pool", titleCase.String("run")))
	w.Println("")
}

func printValidateUsage() {
	w := out

	w.HelpTitle("celconf validate - check configuration and fixtures")

	w.HelpSection("Usage:")
	w.HelpUsage("celconf validate [options]")

	w.HelpSection("Description:")
	w.Println("  Validates celconf.json against its schema and configuration rules,")
	w.Println("  then loads every fixture suite to catch authoring mistakes early.")
	w.Println("  Nothing is evaluated.")

	w.HelpSection("Examples:")
	w.HelpExample("celconf validate", "Validate the current project")
	w.HelpExample("celconf validate --config=ci/celconf.json", "Validate a specific config")
	w.Println("")
}

func printSuitesUsage() {
	w := out

	w.HelpTitle("celconf suites - list discovered suites")

	w.HelpSection("Usage:")
	w.HelpUsage("celconf suites [options]")

	w.HelpSection("Examples:")
	w.HelpExample("celconf suites", "List suites with scenario counts")
	w.Println("")
}
