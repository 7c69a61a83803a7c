package interfaces

import "time"

// FindingLevel mirrors the propagation policy of spec.md §7: every
// non-fatal finding is recorded at one of these levels.
type FindingLevel string

const (
	LevelWarning FindingLevel = "warning"
	LevelError   FindingLevel = "error"
)

// Finding is one entry in the structured message buffer (spec.md §7),
// persisted at end of build as console-messages.json.
type Finding struct {
	Kind        string
	Level       FindingLevel
	Operation   string
	Message     string
	SourceFiles []string
	Timestamp   time.Time
	Details     map[string]any
}

// DiagnosticsBuffer accumulates Findings for the whole build and reports
// aggregate counts/snapshots.
type DiagnosticsBuffer interface {
	Add(f Finding)
	All() []Finding
	HasErrors() bool
}
