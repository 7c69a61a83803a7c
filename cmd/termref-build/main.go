package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trustoverip/spec-up-t-go/cmd/termref-build/internal/bootstrap"
	"github.com/trustoverip/spec-up-t-go/internal/build"
)

var (
	moduleBuilder = bootstrap.BuildModule
	moduleBuild   = func(ctx context.Context, m *bootstrap.Module) (*build.Result, error) {
		return build.Build(ctx, m.Config)
	}
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run parses args, runs one build, and reports validation results to
// stdout. It returns a non-nil error when the pipeline failed outright, or
// when --check found unresolved references or dangling definitions.
func run(args []string) error {
	fs := flag.NewFlagSet("termref-build", flag.ContinueOnError)
	manifestPath := fs.String("manifest", "specs.json", "Path to the project manifest file")
	cacheDir := fs.String("cache-dir", "", "Override the persisted-cache directory (defaults to <spec_directory>/.cache)")
	templatePath := fs.String("template", "", "Override the HTML template file (defaults to the embedded template)")
	branch := fs.String("branch", "", "Branch recorded in the emitted github-repo-info meta tag (defaults to main)")
	check := fs.Bool("check", false, "Run the pipeline and report validation results without writing the final document")
	logFormat := fs.String("log-format", "console", "Logger output: console, json, or pretty")
	logLevel := fs.String("log-level", "", "Minimum log level for json/pretty log formats")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ManifestPath: *manifestPath,
		CacheDir:     *cacheDir,
		TemplatePath: *templatePath,
		Branch:       *branch,
		Check:        *check,
		LogFormat:    *logFormat,
		LogLevel:     *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	result, err := moduleBuild(context.Background(), module)
	if err != nil {
		module.Logger.Error("build failed", "error", err)
		return fmt.Errorf("build: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\nOutput: %s\nWritten: %t\nUnresolved references: %d\nDangling definitions: %d\n",
		*manifestPath, result.OutputPath, result.Written, len(result.Validation.Unresolved), len(result.Validation.Dangling))

	if *check && (len(result.Validation.Unresolved) > 0 || len(result.Validation.Dangling) > 0) {
		return fmt.Errorf("check failed: %d unresolved reference(s), %d dangling definition(s)",
			len(result.Validation.Unresolved), len(result.Validation.Dangling))
	}
	return nil
}
