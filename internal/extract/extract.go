/*
PURPOSE:
  Extracts performance facts from a finished llama.cpp console log:
  prompt/generation throughput and the Metal memory breakdown.

REQUIREMENTS:
  User-specified:
  - Only the last occurrence of each line counts; the engine reprints
    them while it runs and the final one is the finished state.
  - A line that never appears leaves its fields absent, not zero.

  Implementation-discovered:
  - Logs may carry invalid UTF-8; it is dropped, never fatal.
  - The Metal pattern is anchored on the 12288 MiB working-set constant.

ARCHITECTURE INTEGRATION:
  - Called by: internal/summary
  - Produces: internal/model.LogFacts

ERROR HANDLING:
  - A matched field that does not parse as a number returns
    model.ErrMalformedNumber. No match is not an error.

IMPLEMENTATION RULES:
  - Pure function over text, no I/O.
  - Patterns are compiled once at package level.

USAGE:
  facts, err := extract.ParseLog(extract.Decode(raw))

SELF-HEALING INSTRUCTIONS:
  - If the engine changes its summary line format, update the patterns and
    the fixtures in extract_test.go together.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Last-match-wins reports a stale value if the final reprint is missing.
*/

package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/daryltucker/qos-llm/internal/model"
)

var (
	throughputRe = regexp.MustCompile(
		`\[\s*Prompt:\s*([0-9.]+)\s*t/s\s*\|\s*Generation:\s*([0-9.]+)\s*t/s\s*\]`)

	// free, used_total = (model + context + compute), unaccounted
	metalRe = regexp.MustCompile(
		`Metal .*?\|\s*12288\s*=\s*([0-9]+)\s*\+\s*\(([0-9]+)\s*=\s*([0-9]+)\s*\+\s*([0-9]+)\s*\+\s*([0-9]+)\)\s*\+\s*([0-9]+)`)
)

// Decode turns raw log bytes into text, dropping invalid UTF-8 sequences.
func Decode(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
}

// ParseLog applies both patterns to text. Groups that never matched are left nil.
func ParseLog(text string) (model.LogFacts, error) {
	var facts model.LogFacts

	if m := lastMatch(throughputRe, text); m != nil {
		prompt, err := parseFloat("prompt_tps", m[1])
		if err != nil {
			return facts, err
		}
		gen, err := parseFloat("gen_tps", m[2])
		if err != nil {
			return facts, err
		}
		facts.Throughput = &model.Throughput{PromptTPS: prompt, GenTPS: gen}
	}

	if m := lastMatch(metalRe, text); m != nil {
		var vals [6]int64
		for i := range vals {
			v, err := strconv.ParseInt(m[i+1], 10, 64)
			if err != nil {
				return facts, fmt.Errorf("metal breakdown field %d %q: %w", i, m[i+1], model.ErrMalformedNumber)
			}
			vals[i] = v
		}
		facts.Memory = &model.MemoryBreakdown{
			Free:        vals[0],
			UsedTotal:   vals[1],
			Model:       vals[2],
			Context:     vals[3],
			Compute:     vals[4],
			Unaccounted: vals[5],
		}
	}

	return facts, nil
}

func lastMatch(re *regexp.Regexp, text string) []string {
	all := re.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, s, model.ErrMalformedNumber)
	}
	return v, nil
}
