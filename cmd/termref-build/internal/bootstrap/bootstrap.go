// Package bootstrap wires command-line flags into an internal/build.Config,
// keeping flag parsing (main.go) separate from configuration assembly
// (this package).
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/trustoverip/spec-up-t-go/internal/build"
	"github.com/trustoverip/spec-up-t-go/internal/logging/console"
	"github.com/trustoverip/spec-up-t-go/internal/logging/gologger"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// Options captures the termref-build CLI's flags.
type Options struct {
	ManifestPath string
	CacheDir     string
	TemplatePath string
	Branch       string
	Check        bool

	LogFormat string // "console" (default) or "json"/"pretty" via go-logger
	LogLevel  string
}

// Module bundles the assembled build configuration with a CLI-facing logger.
type Module struct {
	Config build.Config
	Logger interfaces.Logger
}

// BuildModule validates Options and assembles the internal/build.Config plus
// a logger provider for it, choosing between the plain console logger (the
// CLI default) and the go-logger adapter once a structured LogFormat is
// requested.
func BuildModule(opts Options) (*Module, error) {
	if strings.TrimSpace(opts.ManifestPath) == "" {
		return nil, fmt.Errorf("bootstrap: --manifest is required")
	}

	provider, err := buildLoggerProvider(opts)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: configuring logger: %w", err)
	}

	cfg := build.Config{
		ManifestPath:   opts.ManifestPath,
		CacheDir:       opts.CacheDir,
		TemplatePath:   opts.TemplatePath,
		Branch:         opts.Branch,
		Check:          opts.Check,
		LoggerProvider: provider,
	}

	return &Module{
		Config: cfg,
		Logger: provider.GetLogger("termref.cli"),
	}, nil
}

func buildLoggerProvider(opts Options) (interfaces.LoggerProvider, error) {
	format := strings.ToLower(strings.TrimSpace(opts.LogFormat))
	if format == "" || format == "console" {
		return console.NewProvider(console.Options{}), nil
	}

	gp, err := gologger.NewProvider(gologger.Config{
		Level:  opts.LogLevel,
		Format: format,
	})
	if err != nil {
		return nil, err
	}
	return gp, nil
}
