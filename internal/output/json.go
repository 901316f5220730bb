/*
PURPOSE:
  Writes pipeline artifacts (summary.json, <run>_summary.json,
  comparison.json) as indented JSON documents.

REQUIREMENTS:
  User-specified:
  - Human-readable JSON, 2-space indent.

  Implementation-discovered:
  - Each artifact is a whole-file replace. Re-running a stage overwrites,
    never patches.
  - Readers must keep key order, so records decode into model.Record.

ARCHITECTURE INTEGRATION:
  - Called by: internal/summary, internal/report
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on encode, file creation or write failure.
  - A missing file on read is reported as model.ErrMissingInput.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder with SetIndent.

USAGE:
  err := output.WriteJSON("runs/r1/summary.json", rec)
  rec, err := output.ReadRecord("runs/r1/summary.json")

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/record.go

MAINTENANCE:
  - None.
*/

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/daryltucker/qos-llm/internal/model"
)

// WriteJSON encodes v with a 2-space indent and replaces the file at path.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadRecord decodes the JSON object stored at path.
func ReadRecord(path string) (*model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing %s: %w", path, model.ErrMissingInput)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	rec := model.NewRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rec, nil
}
