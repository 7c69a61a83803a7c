// Package diagnostics implements the non-fatal finding buffer (spec.md §7):
// a single accumulation point for every non-fatal diagnostic raised across
// the pipeline, flushed once at end of build as console-messages.json.
package diagnostics

import (
	"sync"
	"time"

	"github.com/trustoverip/spec-up-t-go/internal/logging"
	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// systemClock is the default interfaces.Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Buffer accumulates Findings for the whole build. It is safe for
// concurrent use: the Remote Fetcher's bounded fan-out (spec.md §5) appends
// findings from multiple goroutines before its join point.
type Buffer struct {
	mu       sync.Mutex
	findings []interfaces.Finding
	logger   interfaces.Logger
	clock    interfaces.Clock
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLogger attaches a module-scoped logger that mirrors every added
// Finding at its corresponding level (spec.md §2 ambient-stack note: "every
// non-fatal finding is logged ... in addition to being buffered").
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(b *Buffer) {
		b.logger = logging.BuildLogger(provider)
	}
}

// WithClock overrides the buffer's notion of "now", used to stamp Findings
// that arrive without one already set. Tests supply a fixed clock for
// reproducible snapshots.
func WithClock(clock interfaces.Clock) Option {
	return func(b *Buffer) {
		b.clock = clock
	}
}

// New constructs an empty Buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{logger: logging.NoOp(), clock: systemClock{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add appends a Finding and mirrors it to the logger at the matching level.
// Callers may leave Timestamp zero; Add stamps it from the buffer's clock.
func (b *Buffer) Add(f interfaces.Finding) {
	if f.Timestamp.IsZero() {
		f.Timestamp = b.clock.Now()
	}

	b.mu.Lock()
	b.findings = append(b.findings, f)
	b.mu.Unlock()

	args := []any{"kind", f.Kind, "operation", f.Operation}
	if len(f.SourceFiles) > 0 {
		args = append(args, "sourceFiles", f.SourceFiles)
	}
	if f.Level == interfaces.LevelError {
		b.logger.Error(f.Message, args...)
	} else {
		b.logger.Warn(f.Message, args...)
	}
}

// All returns a snapshot slice of every Finding added so far, in the order
// they were added.
func (b *Buffer) All() []interfaces.Finding {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]interfaces.Finding, len(b.findings))
	copy(out, b.findings)
	return out
}

// HasErrors reports whether any buffered Finding is at LevelError. The
// CLI's --check exit code is decided from the validation report, not from
// this method.
func (b *Buffer) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range b.findings {
		if f.Level == interfaces.LevelError {
			return true
		}
	}
	return false
}

var _ interfaces.DiagnosticsBuffer = (*Buffer)(nil)
