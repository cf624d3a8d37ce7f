package validate

import (
	"fmt"

	"artcat/internal/catalog"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Violation struct {
	Severity Severity
	Row      int // 1-based data row, 0 for table-level checks
	Message  string
}

func (v Violation) String() string {
	if v.Row > 0 {
		return fmt.Sprintf("[%s] row %d: %s", v.Severity, v.Row, v.Message)
	}
	return fmt.Sprintf("[%s] %s", v.Severity, v.Message)
}

// CheckRows verifies the raw structure before parsing: every row must
// carry the legacy or current field count.
func CheckRows(rows [][]string) []Violation {
	var violations []Violation
	for i, row := range rows {
		if len(row) != 7 && len(row) != 9 {
			violations = append(violations, Violation{
				Severity: SeverityError,
				Row:      i + 1,
				Message:  fmt.Sprintf("expected 7 or 9 fields, got %d", len(row)),
			})
		}
	}
	return violations
}

// CheckTable reports invariant violations on a final table. It never
// mutates. expectedRows is the prior table's size; zero disables the
// tolerance check. tolerancePct bounds allowed drift either way and is
// a warning, not an error.
func CheckTable(table []catalog.Record, expectedRows, tolerancePct int) []Violation {
	var violations []Violation

	seen := make(map[catalog.Key]int, len(table))
	for i, rec := range table {
		row := i + 1

		if !rec.Kind.Valid() {
			violations = append(violations, Violation{
				Severity: SeverityError,
				Row:      row,
				Message:  fmt.Sprintf("unknown kind %q", rec.Kind),
			})
		}

		if !rec.Status.Valid() {
			violations = append(violations, Violation{
				Severity: SeverityError,
				Row:      row,
				Message:  fmt.Sprintf("unknown status %q", rec.Status),
			})
		}

		key := rec.Key()
		if first, ok := seen[key]; ok {
			violations = append(violations, Violation{
				Severity: SeverityError,
				Row:      row,
				Message:  fmt.Sprintf("duplicate identity key %s/%s/%s (first at row %d)", rec.Kind, rec.Origin, rec.Name, first),
			})
		} else {
			seen[key] = row
		}
	}

	if expectedRows > 0 && tolerancePct > 0 {
		low := expectedRows * (100 - tolerancePct) / 100
		high := expectedRows * (100 + tolerancePct) / 100
		if len(table) < low || len(table) > high {
			violations = append(violations, Violation{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("row count %d outside tolerance band [%d, %d] around prior size %d", len(table), low, high, expectedRows),
			})
		}
	}

	return violations
}

// Errors filters violations down to the ones that should fail a run.
func Errors(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Severity == SeverityError {
			out = append(out, v)
		}
	}
	return out
}
