/*
PURPOSE:
  Sentinel errors shared by every pipeline stage.

REQUIREMENTS:
  User-specified:
  - Missing inputs and malformed numbers are fatal and distinguishable.

  Implementation-discovered:
  - Callers wrap these with the offending path so the operator can find it.

ARCHITECTURE INTEGRATION:
  - Used by: internal/runconfig, internal/extract, internal/summary,
    internal/metrics, internal/output

ERROR HANDLING:
  - Match with errors.Is.

IMPLEMENTATION RULES:
  - Wrap with %w, never compare strings.

USAGE:
  return fmt.Errorf("missing %s: %w", path, model.ErrMissingInput)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - cmd/qos-llm/main.go

MAINTENANCE:
  - None.
*/

package model

import "errors"

var (
	ErrMissingInput    = errors.New("missing input")
	ErrMalformedNumber = errors.New("malformed number")
)
