// Package scaffold embeds the starter settings file and writes it to a
// target project directory.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed assets/*
var assets embed.FS

// RunnerConfig is the Playwright config whose absence triggers a
// warning.
const RunnerConfig = "playwright.config.ts"

// Options configures the scaffold operation.
type Options struct {
	// TargetDir is the root directory to scaffold into.
	// Defaults to the current working directory.
	TargetDir string

	// Force overwrites existing files when true.
	// When false, existing files are skipped.
	Force bool

	// Version is embedded in the version marker comment.
	// Defaults to "dev".
	Version string

	// Stdout is the writer for summary output.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// Result reports what the scaffold operation did.
type Result struct {
	// Created lists files that were written for the first time.
	Created []string

	// Skipped lists files that already existed and were not
	// overwritten (Force was false).
	Skipped []string

	// Overwritten lists files that existed and were replaced
	// (Force was true).
	Overwritten []string
}

func versionMarker(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("# scaffolded by spec-collector %s\n", version)
}

// action is what happened to one asset.
type action int

const (
	created action = iota
	skipped
	overwritten
)

// Run writes every embedded asset into the target directory, each
// prefixed with a version marker comment:
//
//	# scaffolded by spec-collector vX.Y.Z
//
// Existing files are skipped unless opts.Force is set.
func Run(opts Options) (*Result, error) {
	if opts.TargetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		opts.TargetDir = cwd
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if _, err := os.Stat(filepath.Join(opts.TargetDir, RunnerConfig)); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(opts.Stdout, "Warning: no %s found in current directory.\n", RunnerConfig)
		fmt.Fprintln(opts.Stdout, "Edit configPath in the settings file to point at your Playwright config.")
		fmt.Fprintln(opts.Stdout)
	}

	paths, err := AssetPaths()
	if err != nil {
		return nil, fmt.Errorf("listing embedded assets: %w", err)
	}

	result := &Result{}
	marker := []byte(versionMarker(opts.Version))
	for _, rel := range paths {
		act, err := writeAsset(opts.TargetDir, rel, marker, opts.Force)
		if err != nil {
			return nil, err
		}
		switch act {
		case created:
			result.Created = append(result.Created, rel)
		case skipped:
			result.Skipped = append(result.Skipped, rel)
		case overwritten:
			result.Overwritten = append(result.Overwritten, rel)
		}
	}

	printSummary(opts.Stdout, result)

	return result, nil
}

// writeAsset copies one embedded asset below dir, marker first.
func writeAsset(dir, rel string, marker []byte, force bool) (action, error) {
	outPath := filepath.Join(dir, filepath.FromSlash(rel))

	_, statErr := os.Stat(outPath)
	exists := statErr == nil
	if exists && !force {
		return skipped, nil
	}

	content, err := AssetContent(rel)
	if err != nil {
		return 0, fmt.Errorf("reading embedded asset %s: %w", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(outPath, append(append([]byte{}, marker...), content...), 0o644); err != nil {
		return 0, fmt.Errorf("creating %s: %w", rel, err)
	}

	if exists {
		return overwritten, nil
	}
	return created, nil
}

func printSummary(w io.Writer, r *Result) {
	fmt.Fprintln(w, "spec-collector initialized:")

	for _, f := range r.Created {
		fmt.Fprintf(w, "  created: %s\n", f)
	}
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "  skipped: %s (already exists)\n", f)
	}
	for _, f := range r.Overwritten {
		fmt.Fprintf(w, "  overwritten: %s\n", f)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit the settings file to match your project, then run spec-collector.")

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "%d file(s) skipped (use --force to overwrite).\n", len(r.Skipped))
	}
}

// AssetPaths returns the relative paths of all embedded assets.
func AssetPaths() ([]string, error) {
	var paths []string
	err := fs.WalkDir(assets, "assets", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, strings.TrimPrefix(path, "assets/"))
		return nil
	})
	return paths, err
}

// AssetContent returns the raw content of an embedded asset by its
// relative path, e.g. "spec-collector.yaml".
func AssetContent(relPath string) ([]byte, error) {
	return assets.ReadFile("assets/" + relPath)
}
