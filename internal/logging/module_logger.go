package logging

import (
	"context"
	"strings"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

const (
	rootModule       = "termref"
	manifestModule   = "termref.manifest"
	scannerModule    = "termref.scanner"
	collectorModule  = "termref.collector"
	fetchModule      = "termref.fetch"
	storeModule      = "termref.store"
	renderModule     = "termref.render"
	postprocessModule = "termref.postprocess"
	validateModule   = "termref.validate"
	emitModule       = "termref.emit"
	buildModule      = "termref.build"
)

const (
	fieldSourceFile     = "source_file"
	fieldExternalSpec   = "external_spec"
	fieldTerm           = "term"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ManifestLogger returns the logger namespace reserved for the manifest loader.
func ManifestLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, manifestModule)
}

// ScannerLogger returns the logger namespace reserved for the markdown scanner.
func ScannerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, scannerModule)
}

// CollectorLogger returns the logger namespace reserved for the reference collector.
func CollectorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, collectorModule)
}

// FetchLogger returns the logger namespace reserved for the remote fetcher.
func FetchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fetchModule)
}

// StoreLogger returns the logger namespace reserved for reference store persistence.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// RenderLogger returns the logger namespace reserved for the markdown engine and tag renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// PostprocessLogger returns the logger namespace reserved for the definition-list postprocessor.
func PostprocessLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postprocessModule)
}

// ValidateLogger returns the logger namespace reserved for the validator.
func ValidateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validateModule)
}

// EmitLogger returns the logger namespace reserved for the emitter.
func EmitLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, emitModule)
}

// BuildLogger returns the logger namespace reserved for pipeline orchestration.
func BuildLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, buildModule)
}

// WithReferenceContext enriches the provided logger with common reference
// fields such as source file, external spec, and term. Empty values are
// ignored.
func WithReferenceContext(logger interfaces.Logger, sourceFile, externalSpec, term string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(sourceFile); trimmed != "" {
		fields[fieldSourceFile] = trimmed
	}
	if trimmed := strings.TrimSpace(externalSpec); trimmed != "" {
		fields[fieldExternalSpec] = trimmed
	}
	if trimmed := strings.TrimSpace(term); trimmed != "" {
		fields[fieldTerm] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
