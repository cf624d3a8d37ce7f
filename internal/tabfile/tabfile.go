package tabfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"artcat/internal/catalog"
	"artcat/internal/logger"
)

var log = logger.ForComponent("tabfile")

// Header is the current table schema. Older tables omit the last two
// columns; both widths are accepted on read, only this one is written.
var Header = []string{"Type", "Server", "Category", "Name", "Description", "Status", "Path", "Created", "LastUpdated"}

const (
	legacyFieldCount  = 7
	currentFieldCount = 9
)

// Table is a parsed table plus the warnings its read produced.
type Table struct {
	Records  []catalog.Record
	Warnings []string
}

// Read loads a delimited table in any supported encoding. Rows of an
// unexpected width are dropped with a warning; an unreadable file is
// the caller's fatal error.
func Read(path string) (*Table, error) {
	content, detected, err := ReadFileAsUTF8(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	log.Debug("table decoded", "path", path, "encoding", detected.Name, "bom", detected.HasBOM)

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	table := &Table{}
	start := 0
	if isHeaderRow(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		rec, ok := recordFromRow(row)
		if !ok {
			table.Warnings = append(table.Warnings,
				fmt.Sprintf("row %d: expected %d or %d fields, got %d; dropped", i+1, legacyFieldCount, currentFieldCount, len(row)))
			continue
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// ReadRows returns the raw rows without parsing or dropping anything,
// for structural validation of an existing table.
func ReadRows(path string) ([][]string, error) {
	content, _, err := ReadFileAsUTF8(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}

	if len(rows) > 0 && isHeaderRow(rows[0]) {
		rows = rows[1:]
	}
	return rows, nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "Type")
}

func recordFromRow(row []string) (catalog.Record, bool) {
	if len(row) != legacyFieldCount && len(row) != currentFieldCount {
		return catalog.Record{}, false
	}

	rec := catalog.Record{
		Kind:        catalog.Kind(strings.TrimSpace(row[0])),
		Origin:      row[1],
		Category:    row[2],
		Name:        row[3],
		Description: row[4],
		Status:      catalog.Status(strings.TrimSpace(row[5])),
		SourcePath:  row[6],
	}

	if len(row) == currentFieldCount {
		rec.Created = row[7]
		rec.Updated = row[8]
	}

	return rec, true
}

// Write emits the table in the current schema, UTF-8.
func Write(path string, records []catalog.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			string(rec.Kind),
			rec.Origin,
			rec.Category,
			rec.Name,
			rec.Description,
			string(rec.Status),
			rec.SourcePath,
			rec.Created,
			rec.Updated,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}

	return f.Sync()
}
