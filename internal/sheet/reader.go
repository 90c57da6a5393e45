// Package sheet reads uploaded spreadsheets into header keyed rows.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/igorsal/api-console/internal/models"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

const utf8BOM = "\ufeff"

// Parse selects the reader by file extension (.csv or .xlsx).
func Parse(filename string, r io.Reader) ([]models.CSVRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("unsupported file type %q", filepath.Ext(filename)))
	}
}

// ParseCSV reads comma separated text. Quoted fields may contain commas and
// newlines. Rows of any width are accepted.
func ParseCSV(r io.Reader) ([]models.CSVRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, pkgerrors.NewValidationError("malformed CSV").WithCause(err)
		}
		records = append(records, record)
	}

	return buildRows(records), nil
}

// ParseXLSX reads the first worksheet of a workbook.
func ParseXLSX(r io.Reader) ([]models.CSVRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.NewValidationError("unreadable workbook").WithCause(err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []models.CSVRow{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.NewValidationError("unreadable worksheet").WithCause(err)
	}

	return buildRows(records), nil
}

// buildRows keys each non-blank record by the trimmed header of its column.
// Missing trailing cells read as empty strings; cells past the header are
// ignored.
func buildRows(records [][]string) []models.CSVRow {
	var lines [][]string
	for _, rec := range records {
		if !isBlank(rec) {
			lines = append(lines, rec)
		}
	}

	rows := []models.CSVRow{}
	if len(lines) < 2 {
		return rows
	}

	header := make([]string, len(lines[0]))
	for i, name := range lines[0] {
		header[i] = strings.TrimSpace(name)
	}
	header[0] = strings.TrimSpace(strings.TrimPrefix(header[0], utf8BOM))

	for _, rec := range lines[1:] {
		row := make(models.CSVRow, len(header))
		for i, name := range header {
			value := ""
			if i < len(rec) {
				value = strings.TrimSpace(rec[i])
			}
			row[name] = value
		}
		rows = append(rows, row)
	}

	return rows
}

func isBlank(rec []string) bool {
	return len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "")
}
