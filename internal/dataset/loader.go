package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

// Table is the cleaned, immutable dataset. Opened runs parallel to Rows and
// holds the parsed opened timestamp for each row. Nothing mutates a Table
// after Load returns it.
type Table struct {
	Columns []string
	Rows    [][]string
	Opened  []time.Time
}

// Column returns all values of the named column, in row order
func (t *Table) Column(name string) ([]string, error) {
	idx := -1
	for i, col := range t.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in cleaned dataset", name)
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// dateLayouts are tried in order when parsing the opened timestamp.
// The source exports use a few different locale formats.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006 15:04",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"2-Jan-2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Load reads the CSV at path, validates the schema against its header, and
// runs the cleaning pass: rows with unparseable opened dates are dropped,
// entirely-null columns are removed, exact duplicate rows are collapsed.
// The returned stats carry operator-facing notices for everything removed.
func Load(path string, schema Schema) (*Table, model.CleanStats, error) {
	var stats model.CleanStats

	f, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, stats, fmt.Errorf("%s has no header row", path)
	}

	header := records[0]
	if err := schema.Validate(header, path); err != nil {
		return nil, stats, err
	}

	dateIdx := indexOf(header, schema.Date)
	stats.RowsRead = len(records) - 1

	// 1. Parse opened dates; an unparseable date drops the whole row.
	var rows [][]string
	var opened []time.Time
	for _, row := range records[1:] {
		if len(row) != len(header) {
			stats.DroppedDates++
			continue
		}
		when, ok := parseDate(row[dateIdx])
		if !ok {
			stats.DroppedDates++
			continue
		}
		rows = append(rows, row)
		opened = append(opened, when)
	}

	// 2. Remove columns that are null in every surviving row.
	columns := append([]string(nil), header...)
	columns, rows, dropped := pruneEmptyColumns(columns, rows)
	stats.DroppedColumns = dropped
	for _, col := range dropped {
		stats.Notices = append(stats.Notices,
			fmt.Sprintf("Dropped '%s' column due to all null values.", col))
	}

	// 3. Collapse rows that are identical across every remaining column.
	rows, opened, removed := dedupe(rows, opened)
	stats.DuplicateRows = removed
	if removed > 0 {
		stats.Notices = append(stats.Notices,
			fmt.Sprintf("Removed %d duplicate rows.", removed))
	} else {
		stats.Notices = append(stats.Notices, "No duplicate rows found.")
	}

	return &Table{Columns: columns, Rows: rows, Opened: opened}, stats, nil
}

func indexOf(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

func isNull(v string) bool {
	return strings.TrimSpace(v) == ""
}

func pruneEmptyColumns(columns []string, rows [][]string) ([]string, [][]string, []string) {
	if len(rows) == 0 {
		return columns, rows, nil
	}

	keep := make([]int, 0, len(columns))
	var dropped []string
	for i, col := range columns {
		allNull := true
		for _, row := range rows {
			if !isNull(row[i]) {
				allNull = false
				break
			}
		}
		if allNull {
			dropped = append(dropped, col)
		} else {
			keep = append(keep, i)
		}
	}
	if len(dropped) == 0 {
		return columns, rows, nil
	}

	newColumns := make([]string, len(keep))
	for j, i := range keep {
		newColumns[j] = columns[i]
	}
	newRows := make([][]string, len(rows))
	for r, row := range rows {
		newRow := make([]string, len(keep))
		for j, i := range keep {
			newRow[j] = row[i]
		}
		newRows[r] = newRow
	}
	return newColumns, newRows, dropped
}

func dedupe(rows [][]string, opened []time.Time) ([][]string, []time.Time, int) {
	seen := make(map[string]bool, len(rows))
	outRows := rows[:0:0]
	outOpened := opened[:0:0]
	removed := 0
	for i, row := range rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		outRows = append(outRows, row)
		outOpened = append(outOpened, opened[i])
	}
	return outRows, outOpened, removed
}
