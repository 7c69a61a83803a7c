package store

import (
	"encoding/json"
	"fmt"

	"github.com/trustoverip/spec-up-t-go/pkg/interfaces"
)

// ScriptTag renders rs as the `<script>const allXTrefs = …;</script>` block
// the Emitter embeds in the output document (spec.md §4.13, §6: "a single
// `<script>` block whose body is `const allXTrefs = <JSON>;`"). It returns
// an empty string when rs holds no records, since the Emitter field is
// documented as present "when present".
func ScriptTag(rs interfaces.ReferenceStore) (string, error) {
	records := rs.Records()
	if len(records) == 0 {
		return "", nil
	}

	doc := Document{XTrefs: make([]wireRecord, 0, len(records))}
	for _, r := range records {
		doc.XTrefs = append(doc.XTrefs, toWireRecord(r))
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("store: marshaling reference store for script tag: %w", err)
	}

	return fmt.Sprintf("<script>\nconst %s = %s;\n</script>", jsAssignmentVar, jsonBytes), nil
}
