package diagnostics

import (
	"sort"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// SnapshotMetadata is the `metadata` object of console-messages.json
// (spec.md §6).
type SnapshotMetadata struct {
	GeneratedAt     string         `json:"generatedAt"`
	TotalMessages   int            `json:"totalMessages"`
	Operations      []string       `json:"operations"`
	MessagesByType  map[string]int `json:"messagesByType"`
}

// SnapshotMessage is one entry of console-messages.json's `messages` array.
type SnapshotMessage struct {
	Timestamp      string         `json:"timestamp"`
	Type           string         `json:"type"`
	Message        string         `json:"message"`
	Operation      string         `json:"operation"`
	AdditionalData map[string]any `json:"additionalData,omitempty"`
}

// Snapshot is the full console-messages.json document shape.
type Snapshot struct {
	Metadata SnapshotMetadata  `json:"metadata"`
	Messages []SnapshotMessage `json:"messages"`
}

// Snapshot builds the console-messages.json document from every Finding
// added so far.
func (b *Buffer) Snapshot(clock interfaces.Clock) Snapshot {
	findings := b.All()

	operationSet := make(map[string]struct{})
	byType := make(map[string]int)
	messages := make([]SnapshotMessage, 0, len(findings))

	for _, f := range findings {
		operationSet[f.Operation] = struct{}{}
		byType[f.Kind]++

		var additional map[string]any
		if len(f.Details) > 0 {
			additional = f.Details
		}

		messages = append(messages, SnapshotMessage{
			Timestamp:      f.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
			Type:           string(f.Level),
			Message:        f.Message,
			Operation:      f.Operation,
			AdditionalData: additional,
		})
	}

	operations := make([]string, 0, len(operationSet))
	for op := range operationSet {
		operations = append(operations, op)
	}
	sort.Strings(operations)

	return Snapshot{
		Metadata: SnapshotMetadata{
			GeneratedAt:    clock.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
			TotalMessages:  len(findings),
			Operations:     operations,
			MessagesByType: byType,
		},
		Messages: messages,
	}
}
