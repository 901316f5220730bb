/*
PURPOSE:
  Reads the flat key=value config.txt the benchmark harness writes next to
  each run (tag, ctx, gen_tokens, model).

REQUIREMENTS:
  User-specified:
  - One key=value pair per line; lines without '=' are ignored.
  - Keys and values are trimmed; a repeated key keeps its last value.

  Implementation-discovered:
  - Values may themselves contain '=' (URLs), so only the first one splits.
  - No typing here; internal/summary coerces ints.

ARCHITECTURE INTEGRATION:
  - Called by: internal/summary
  - Produces: internal/model.ConfigRecord

ERROR HANDLING:
  - ReadFile returns model.ErrMissingInput when the file does not exist.

IMPLEMENTATION RULES:
  - Not the tool configuration; see internal/config for that.

USAGE:
  cfg, err := runconfig.ReadFile("runs/r1/config.txt")

SELF-HEALING INSTRUCTIONS:
  - New recognized keys get a Key* constant here.

RELATED FILES:
  - internal/summary/summary.go

MAINTENANCE:
  - None.
*/

package runconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/daryltucker/qos-llm/internal/model"
)

// Recognized keys.
const (
	KeyTag       = "tag"
	KeyCtx       = "ctx"
	KeyGenTokens = "gen_tokens"
	KeyModel     = "model"
)

// Parse splits text into key/value pairs. Lines without '=' are skipped,
// keys and values are trimmed, and a repeated key keeps its last value.
func Parse(text string) model.ConfigRecord {
	cfg := make(model.ConfigRecord)
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	for _, line := range lines {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		cfg[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return cfg
}

// ReadFile parses the config file at path.
func ReadFile(path string) (model.ConfigRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing %s: %w", path, model.ErrMissingInput)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(strings.ToValidUTF8(string(raw), "")), nil
}
