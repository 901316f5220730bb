/*
PURPOSE:
  Writes the comparison set to a CSV file, one row per run.

REQUIREMENTS:
  User-specified:
  - Spreadsheet-friendly companion to comparison.json.

  Implementation-discovered:
  - Runs may carry different keys (a log without a Metal line has no
    metal_* fields). The header is the union of keys in first-seen order
    and absent cells are left empty.

ARCHITECTURE INTEGRATION:
  - Called by: internal/report
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.
  - Single writer per file; analyze runs sequentially, so no locking.

USAGE:
  w, err := output.NewCSVWriter("reports/comparison.csv", header)
  w.Write(rec)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If a new value kind shows up in records, extend cell().

RELATED FILES:
  - internal/model/record.go

MAINTENANCE:
  - None.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/daryltucker/qos-llm/internal/model"
)

// CSVWriter handles writing records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	header []string
}

// NewCSVWriter creates a new CSVWriter and writes header.
// It overwrites the file if it exists.
func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
		header: header,
	}, nil
}

// Write writes one record in header order.
func (cw *CSVWriter) Write(r *model.Record) error {
	row := make([]string, len(cw.header))
	for i, k := range cw.header {
		if v, ok := r.Get(k); ok {
			row[i] = cell(v)
		}
	}
	if err := cw.writer.Write(row); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

// WriteRecordsCSV writes recs to path with the union of their keys as header.
func WriteRecordsCSV(path string, recs []*model.Record) error {
	w, err := NewCSVWriter(path, UnionKeys(recs))
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", path, err)
	}
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			w.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return w.Close()
}

// UnionKeys returns every key of recs once, in first-seen order.
func UnionKeys(recs []*model.Record) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range recs {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case model.Float:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
