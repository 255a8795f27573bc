// Package config loads and validates the spec-collector.yaml settings
// file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/unbound-force/spec-collector/internal/classify"
	"github.com/unbound-force/spec-collector/internal/collector"
	"github.com/unbound-force/spec-collector/internal/placeholder"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = "spec-collector.yaml"

// Default values for omitted settings.
const (
	DefaultConfigPath = "./playwright.config.ts"
	DefaultRootPath   = "./"
	DefaultOutputFile = "./spec-collector-result.json"
)

// DefaultEmptyTestsPath is the default location of the empty-test list.
var DefaultEmptyTestsPath = "./" + placeholder.DefaultFile

// Config is the top-level settings structure.
type Config struct {
	// Projects lists the Playwright projects to collect. Their reports
	// are merged into one catalogue.
	Projects []Project `yaml:"projects" validate:"required,min=1,dive"`

	// FormatTitle configures file name cleaning.
	FormatTitle FormatTitle `yaml:"formatTitle"`

	// IgnoreFiles excludes every test path containing one of the
	// entries as a substring.
	IgnoreFiles []string `yaml:"ignoreFiles"`

	// Include restricts collection to paths matching at least one
	// glob. Empty means all paths.
	Include []string `yaml:"include"`

	// Levels is the depth of the attribute classification.
	Levels int `yaml:"levels" validate:"min=1,max=10"`

	// OutputFile receives the JSON catalogue.
	OutputFile string `yaml:"outputFile" validate:"required"`

	// Host is the catalogue server used by --upload.
	Host string `yaml:"host,omitempty" validate:"omitempty,url"`

	// SpecBoxProject is the catalogue project used by --upload.
	SpecBoxProject string `yaml:"specBoxProject,omitempty"`
}

// Project describes one Playwright project.
type Project struct {
	// ConfigPath is the Playwright config passed to the runner.
	ConfigPath string `yaml:"configPath" validate:"required_without=ReportPath"`

	// ReportPath points at an existing JSON report. When set, the
	// runner is not invoked.
	ReportPath string `yaml:"reportPath,omitempty"`

	// EmptyTestsYamlPath is the empty-test list of the project.
	EmptyTestsYamlPath string `yaml:"emptyTestsYamlPath"`

	// RootPath is the directory spec paths are made relative to.
	RootPath string `yaml:"rootPath"`
}

// FormatTitle holds the file name cleaning rules.
type FormatTitle struct {
	// Remove lists regular expressions removed from file names.
	Remove []string `yaml:"remove" validate:"dive,required"`

	// Replace lists [find, replacement] pairs.
	Replace [][]string `yaml:"replace" validate:"dive,len=2"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Projects: []Project{{
			ConfigPath:         DefaultConfigPath,
			EmptyTestsYamlPath: DefaultEmptyTestsPath,
			RootPath:           DefaultRootPath,
		}},
		FormatTitle: FormatTitle{
			Remove:  []string{},
			Replace: [][]string{},
		},
		IgnoreFiles: []string{},
		Levels:      classify.DefaultLevels,
		OutputFile:  DefaultOutputFile,
	}
}

// Parse decodes settings from r over the defaults and validates them.
// Unknown keys are rejected. An empty document yields the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the settings file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening settings: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills per-project fields the file left empty.
func (c *Config) applyDefaults() {
	for i := range c.Projects {
		p := &c.Projects[i]
		if p.EmptyTestsYamlPath == "" {
			p.EmptyTestsYamlPath = DefaultEmptyTestsPath
		}
		if p.RootPath == "" {
			p.RootPath = DefaultRootPath
		}
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and that every title pattern
// compiles.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fieldPath(fe), fe.Tag()))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}

	if _, err := classify.New(c.FormatOptions()); err != nil {
		return fmt.Errorf("invalid settings: formatTitle: %w", err)
	}
	return nil
}

// fieldPath strips the root struct name from a validator namespace,
// e.g. "Config.projects[0].configPath" becomes "projects[0].configPath".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// FormatOptions converts the title rules and levels for the classifier.
func (c *Config) FormatOptions() classify.Options {
	opts := classify.Options{
		Levels: c.Levels,
		Remove: append([]string(nil), c.FormatTitle.Remove...),
	}
	for _, pair := range c.FormatTitle.Replace {
		if len(pair) != 2 {
			continue
		}
		opts.Replace = append(opts.Replace, [2]string{pair[0], pair[1]})
	}
	return opts
}

// PathFilter builds the path predicate from IgnoreFiles and Include.
func (c *Config) PathFilter() collector.PathFilter {
	return collector.NewPathFilter(c.IgnoreFiles, c.Include)
}

// CanUpload reports whether the upload target is configured.
func (c *Config) CanUpload() bool {
	return c.Host != "" && c.SpecBoxProject != ""
}
