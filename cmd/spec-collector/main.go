package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/unbound-force/spec-collector/internal/classify"
	"github.com/unbound-force/spec-collector/internal/collector"
	"github.com/unbound-force/spec-collector/internal/config"
	"github.com/unbound-force/spec-collector/internal/placeholder"
	"github.com/unbound-force/spec-collector/internal/playwright"
	"github.com/unbound-force/spec-collector/internal/report"
	"github.com/unbound-force/spec-collector/internal/scaffold"
	"github.com/unbound-force/spec-collector/internal/taxonomy"
	"github.com/unbound-force/spec-collector/internal/upload"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := newCollectCmd()
	root.Use = "spec-collector"
	root.Short = "Collect a spec-box suite from Playwright tests"
	root.Long = `spec-collector lists the tests of one or more Playwright projects,
merges them with the empty tests registered in specBoxTests.yml, and
builds a feature catalogue classified by the directory structure of
the test files.

Running spec-collector without a subcommand is the same as running
spec-collector collect.`
	root.Version = version

	root.AddCommand(newCollectCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newEmptyCmd())

	return root
}

// collectParams holds the parsed flags for the collect command.
type collectParams struct {
	settingsPath string
	// settingsSet is true when --settings was given explicitly, which
	// makes a missing file an error.
	settingsSet bool

	reportPath  string
	configPath  string
	filter      string
	levels      int
	output      string
	format      string
	upload      bool
	interactive bool
	verbose     bool

	// runner overrides the launcher used to list tests.
	runner     playwright.GenerateOptions
	httpClient *http.Client

	stdout io.Writer
	stderr io.Writer
}

// runCollect is the extracted, testable body of the collect command.
func runCollect(ctx context.Context, p collectParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}
	if p.verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}

	cfg, err := loadSettings(p.settingsPath, p.settingsSet)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, p); err != nil {
		return err
	}
	if p.upload && !cfg.CanUpload() {
		return fmt.Errorf("host and specBoxProject must be set in %s to use --upload", p.settingsPath)
	}
	logger.Debug("starting with settings", "projects", len(cfg.Projects), "levels", cfg.Levels)

	formatter, err := classify.New(cfg.FormatOptions())
	if err != nil {
		return err
	}

	merger, err := collectProjects(ctx, cfg.Projects, p.runner)
	if err != nil {
		return err
	}

	logger.Info("building suite from reports")
	suite, res := collector.Build(merger.Specs, merger.Placeholders, collector.Options{
		Formatter:  formatter,
		PathFilter: cfg.PathFilter(),
	})
	for _, c := range res.Collisions {
		logger.Warn("feature code collision",
			"code", c.Code, "path", c.Path, "other", c.OtherPath, "renamed", c.Resolved)
	}
	for _, d := range report.FindDuplicates(suite) {
		logger.Warn("duplicate assertion title", "feature", d.Code, "title", d.Title)
	}

	logger.Info("suite generated", "features", len(suite.Features),
		"assertions", suite.AssertionCount(), "path", cfg.OutputFile)
	if err := report.WriteFile(cfg.OutputFile, suite); err != nil {
		return err
	}

	if p.upload {
		logger.Info("uploading suite", "host", cfg.Host, "project", cfg.SpecBoxProject)
		client := &upload.Client{Host: cfg.Host, HTTPClient: p.httpClient}
		if err := client.Upload(ctx, cfg.SpecBoxProject, suite); err != nil {
			return err
		}
		logger.Info("upload complete")
	}

	if p.interactive {
		return runInteractiveCollect(suite)
	}
	return writeSummary(p.stdout, p.format, suite)
}

// loadSettings reads the settings file. A missing default file yields
// the built-in defaults.
func loadSettings(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		logger.Debug("loaded settings", "path", path)
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		logger.Debug("no settings file, using defaults", "path", path)
		return config.DefaultConfig(), nil
	}
	return nil, err
}

// applyOverrides merges command-line flags into cfg and revalidates.
// --report and --config replace the project list with a single
// project that keeps the first project's empty-test file and root.
func applyOverrides(cfg *config.Config, p collectParams) error {
	if p.reportPath != "" || p.configPath != "" {
		proj := config.Project{
			ConfigPath: p.configPath,
			ReportPath: p.reportPath,
		}
		if len(cfg.Projects) > 0 {
			proj.EmptyTestsYamlPath = cfg.Projects[0].EmptyTestsYamlPath
			proj.RootPath = cfg.Projects[0].RootPath
		}
		if proj.EmptyTestsYamlPath == "" {
			proj.EmptyTestsYamlPath = config.DefaultEmptyTestsPath
		}
		if proj.RootPath == "" {
			proj.RootPath = config.DefaultRootPath
		}
		cfg.Projects = []config.Project{proj}
	}
	if p.filter != "" {
		cfg.IgnoreFiles = strings.Fields(p.filter)
	}
	if p.levels != 0 {
		cfg.Levels = p.levels
	}
	if p.output != "" {
		cfg.OutputFile = p.output
	}
	return cfg.Validate()
}

// collectProjects obtains every project's report concurrently, then
// merges reports and empty tests in configuration order.
func collectProjects(ctx context.Context, projects []config.Project, runner playwright.GenerateOptions) (*collector.Merger, error) {
	reports := make([]*playwright.Report, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	for i, proj := range projects {
		g.Go(func() error {
			rpt, err := projectReport(gctx, proj, runner)
			if err != nil {
				return err
			}
			reports[i] = rpt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merger := collector.NewMerger()
	for i, proj := range projects {
		tests, err := placeholder.Load(proj.EmptyTestsYamlPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("merging project", "report", proj.ReportPath, "config", proj.ConfigPath,
			"suites", len(reports[i].Suites), "empty", len(tests))
		merger.AddReport(reports[i], proj.RootPath)
		merger.AddPlaceholders(tests)
	}
	return merger, nil
}

func projectReport(ctx context.Context, proj config.Project, runner playwright.GenerateOptions) (*playwright.Report, error) {
	if proj.ReportPath != "" {
		logger.Info("reading report", "path", proj.ReportPath)
		return playwright.LoadReport(proj.ReportPath)
	}

	logger.Info("generating report", "config", proj.ConfigPath)
	runner.ConfigPath = proj.ConfigPath
	return playwright.Generate(ctx, runner)
}

// writeSummary prints the suite to stdout in the requested format.
func writeSummary(w io.Writer, format string, suite taxonomy.Suite) error {
	switch format {
	case "json":
		return report.WriteJSON(w, suite)
	default:
		return report.WriteText(w, suite)
	}
}

func newCollectCmd() *cobra.Command {
	var p collectParams

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Build the suite and write the result file",
		Long: `Collect tests from every configured Playwright project, classify
them by path, and write the suite to the configured output file.

Each project's tests are listed with 'npx playwright test --list'
unless a prebuilt JSON report is given with reportPath or --report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.settingsSet = cmd.Flags().Changed("settings")
			p.stdout = cmd.OutOrStdout()
			p.stderr = cmd.ErrOrStderr()
			return runCollect(cmd.Context(), p)
		},
	}

	cmd.Flags().StringVarP(&p.settingsPath, "settings", "s", config.DefaultFile,
		"path to the settings file")
	cmd.Flags().StringVarP(&p.reportPath, "report", "r", "",
		"path to a Playwright JSON report (skips the runner)")
	cmd.Flags().StringVarP(&p.configPath, "config", "c", "",
		"path to a Playwright config file")
	cmd.Flags().StringVarP(&p.filter, "filter", "f", "",
		"space-separated substrings of test paths to ignore")
	cmd.Flags().IntVarP(&p.levels, "levels", "l", 0,
		"number of nested levels of the spec tree (default from settings)")
	cmd.Flags().StringVarP(&p.output, "output", "o", "",
		"result file (default from settings)")
	cmd.Flags().StringVar(&p.format, "format", "text",
		"summary format: text or json")
	cmd.Flags().BoolVarP(&p.upload, "upload", "u", false,
		"upload the suite to the spec-box server")
	cmd.Flags().BoolVarP(&p.interactive, "interactive", "i", false,
		"launch interactive TUI for browsing the suite")
	cmd.Flags().BoolVarP(&p.verbose, "verbose", "v", false,
		"print debug logs")

	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter spec-collector.yaml",
		Long: `Write a commented spec-collector.yaml with the default settings
to the current directory. Existing files are kept unless --force is
given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := scaffold.Run(scaffold.Options{
				Force:   force,
				Version: version,
				Stdout:  cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite an existing settings file")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for the result file",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of the result file and of collect --format=json output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}

// emptyParams holds the parsed flags for the empty command.
type emptyParams struct {
	testName string
	fileName string
	yamlPath string
	details  map[string]string
	stdout   io.Writer
}

// runEmpty is the extracted, testable body of the empty command.
func runEmpty(p emptyParams) error {
	t := placeholder.Test{
		TestName: p.testName,
		FileName: p.fileName,
	}
	if len(p.details) > 0 {
		t.Details = make(map[string]any, len(p.details))
		for k, v := range p.details {
			t.Details[k] = v
		}
	}

	if err := placeholder.Append(p.yamlPath, t); err != nil {
		return err
	}
	fmt.Fprintf(p.stdout, "registered empty test %q in %s\n", p.testName, p.yamlPath)
	return nil
}

func newEmptyCmd() *cobra.Command {
	p := emptyParams{}

	cmd := &cobra.Command{
		Use:   "empty <testName>",
		Short: "Register an empty test",
		Long: `Append an empty test to the empty-test list so it appears in the
suite with the Unknown automation state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.testName = args[0]
			p.stdout = cmd.OutOrStdout()
			return runEmpty(p)
		},
	}

	cmd.Flags().StringVar(&p.fileName, "file", "",
		"spec file that declares the test")
	cmd.Flags().StringVar(&p.yamlPath, "yaml", config.DefaultEmptyTestsPath,
		"empty-test list to append to")
	cmd.Flags().StringToStringVar(&p.details, "detail", nil,
		"details entry as key=value (repeatable)")

	return cmd
}
