package spreadsheet

import (
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrEmptyWorkbook = errors.New("workbook has no data rows")

// Table is the first sheet of an uploaded workbook with its header row
// normalized for case-insensitive, alias-based column lookup.
type Table struct {
	Header []string
	Rows   [][]string
}

// Parse reads the first sheet of an xlsx workbook. The first row is treated
// as the header; remaining rows are returned as raw string cells.
func Parse(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = NormalizeHeader(h)
	}

	return &Table{Header: header, Rows: rows[1:]}, nil
}

// NormalizeHeader lowercases a header cell and collapses separators so that
// "Payment Label", "payment_label" and " PAYMENT-LABEL " all match.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.Trim(h, ", \t\n\r")
	h = strings.Trim(h, "'\"`")
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	h = strings.ReplaceAll(h, "/", "_")
	return h
}

// Column returns the index of the first header matching any alias, or -1.
func (t *Table) Column(aliases ...string) int {
	for i, h := range t.Header {
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed cell at idx, tolerating short rows.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ========== WRITING ==========

// NewWorkbook creates a workbook whose default sheet is renamed to the first
// name; additional names become extra sheets in order.
func NewWorkbook(sheets ...string) (*excelize.File, error) {
	f := excelize.NewFile()
	if len(sheets) == 0 {
		return f, nil
	}
	if err := f.SetSheetName("Sheet1", sheets[0]); err != nil {
		return nil, err
	}
	for _, name := range sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SetRow writes values starting at column A of the given 1-based row.
func SetRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// BoldRow writes a header row in bold.
func BoldRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if err := SetRow(f, sheet, row, values); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

// Bytes serializes the workbook and releases its resources.
func Bytes(f *excelize.File) ([]byte, error) {
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Slug turns free text into a filename-safe fragment.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
