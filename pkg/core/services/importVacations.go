package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// compactDateFormat is accepted alongside model.DateFormat on import, for
// spreadsheets that export dates without separators.
const compactDateFormat = "20060102"

// ImportReport summarizes one vacation import run.
type ImportReport struct {
	Added   int
	Skipped int
	Rows    int
}

// ImportVacations reads date,worker rows from r and stores them. Only the
// first record may be a header, detected by its first cell failing to parse
// as a date. Rows already in the store count as skipped; malformed rows
// abort the import.
func ImportVacations(ctx context.Context, store db.VacationStore, logger *zap.Logger, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	report := &ImportReport{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read vacation csv: %w", err)
		}

		date, err := parseVacationDate(record[0])
		if err != nil {
			// Only the very first record can be a header; any later
			// unparseable date aborts the import.
			if first {
				first = false
				continue
			}
			return nil, err
		}
		first = false
		worker := strings.TrimSpace(record[1])
		if worker == "" {
			return nil, fmt.Errorf("row %d has an empty worker name", report.Rows+1)
		}
		report.Rows++

		added, err := store.AddVacation(ctx, date.Format(model.DateFormat), worker)
		if err != nil {
			return nil, fmt.Errorf("failed to store vacation: %w", err)
		}
		if added {
			report.Added++
		} else {
			report.Skipped++
		}
	}

	logger.Info("Vacations imported",
		zap.Int("rows", report.Rows),
		zap.Int("added", report.Added),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

// parseVacationDate accepts both the canonical and the compact date layout.
func parseVacationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if date, err := time.Parse(model.DateFormat, s); err == nil {
		return date, nil
	}
	if date, err := time.Parse(compactDateFormat, s); err == nil {
		return date, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, want %s or %s", s, model.DateFormat, compactDateFormat)
}
