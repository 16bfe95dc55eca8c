package manifest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/sample"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("samplesheet is missing a required column")

// Column names, first alias preferred.
var (
	idColumns        = []string{"sample", "id"}
	forwardColumns   = []string{"fastq_1", "R1"}
	reverseColumns   = []string{"fastq_2", "R2"}
	groupColumns     = []string{"group"}
	singleEndColumns = []string{"single_end"}
)

// Skipped is a data row that was not turned into a record.
type Skipped struct {
	// Line is the 1-based line number in the file.
	Line   int
	Reason string
}

// Result is a parsed samplesheet.
type Result struct {
	Records []sample.RawRecord
	Skipped []Skipped
}

type columns struct {
	id, forward, reverse, group, singleEnd int
}

// ParseCSV reads a samplesheet. Records keep file order.
func ParseCSV(ctx context.Context, r io.Reader) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("samplesheet is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading samplesheet header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samplesheet: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec := sample.RawRecord{
			ID:        field(row, cols.id),
			Forward:   field(row, cols.forward),
			Reverse:   field(row, cols.reverse),
			Group:     field(row, cols.group),
			SingleEnd: strings.ToLower(field(row, cols.singleEnd)) == "true",
		}
		if rec.ID == "" || rec.Forward == "" {
			reason := "missing sample id"
			if rec.ID != "" {
				reason = fmt.Sprintf("sample %q has no fastq_1", rec.ID)
			}
			res.Skipped = append(res.Skipped, Skipped{Line: line, Reason: reason})
			logger.Warn("Skipping samplesheet row.", "line", line, "reason", reason)
			continue
		}
		res.Records = append(res.Records, rec)
	}

	logger.Debug("Samplesheet parsed.", "records", len(res.Records), "skipped", len(res.Skipped))
	return res, nil
}

// ReadFile parses the samplesheet at path.
func ReadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening samplesheet: %w", err)
	}
	defer f.Close()

	res, err := ParseCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// WriteCSV writes records with the columns sample, fastq_1, fastq_2, group.
func WriteCSV(w io.Writer, records []sample.RawRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{idColumns[0], forwardColumns[0], reverseColumns[0], groupColumns[0]}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write([]string{rec.ID, rec.Forward, rec.Reverse, rec.Group}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func mapColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i
			}
		}
		return -1
	}

	cols := columns{
		id:        find(idColumns),
		forward:   find(forwardColumns),
		reverse:   find(reverseColumns),
		group:     find(groupColumns),
		singleEnd: find(singleEndColumns),
	}

	var missing []string
	if cols.id < 0 {
		missing = append(missing, strings.Join(idColumns, "|"))
	}
	if cols.forward < 0 {
		missing = append(missing, strings.Join(forwardColumns, "|"))
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

// field returns the trimmed cell at i, or "" when the column is absent or
// the row is short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
