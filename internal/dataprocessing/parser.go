package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "housingprep/internal/errors"
	"housingprep/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// naTokens are the cell texts read as missing
var naTokens = map[string]bool{
	"":         true,
	"NA":       true,
	"N/A":      true,
	"n/a":      true,
	"NaN":      true,
	"nan":      true,
	"-NaN":     true,
	"-nan":     true,
	"null":     true,
	"NULL":     true,
	"None":     true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"<NA>":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
}

var boolTokens = map[string]bool{
	"True":  true,
	"TRUE":  true,
	"true":  true,
	"False": false,
	"FALSE": false,
	"false": false,
}

// LoadTable reads a table from path, choosing the reader by extension:
// .xlsx is read from its first worksheet, anything else as CSV.
func LoadTable(path string) (*domain.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, "")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open input", err).WithContext("path", path)
	}
	defer f.Close()

	t, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadCSV reads a header row followed by data rows. Short rows are padded
// with missing cells; a row longer than the header is an error.
func LoadCSV(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewParsingError("no header row", err)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("malformed csv", err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("line %d: expected %d fields, saw %d", line, len(header), len(record)), nil).
				WithContext("line", line)
		}
		rows = append(rows, record)
	}

	return buildTable(header, rows)
}

// LoadXLSX reads the named worksheet, or the first one when sheet is empty.
// The first row is the header.
func LoadXLSX(path, sheet string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("no header row", nil).WithContext("sheet", sheet)
	}

	header := rows[0]
	data := rows[1:]
	for i, row := range data {
		if len(row) > len(header) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("row %d: expected %d fields, saw %d", i+2, len(header), len(row)), nil).
				WithContext("sheet", sheet)
		}
	}
	return buildTable(header, data)
}

// buildTable turns raw cell text into typed columns. A column is numeric when
// every present cell parses as a number, bool when every present cell is a
// boolean token, and text otherwise.
func buildTable(header []string, rows [][]string) (*domain.Table, error) {
	names := columnNames(header)
	columns := make([]domain.Column, len(names))
	for j, name := range names {
		raw := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				raw[i] = row[j]
			}
		}
		columns[j] = parseColumn(name, raw)
	}

	t, err := domain.NewTable(columns...)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to build table", err)
	}
	return t, nil
}

// columnNames fills blank headers and suffixes duplicates with .1, .2, ...
func columnNames(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for n := 1; taken[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func parseColumn(name string, raw []string) domain.Column {
	numeric, boolean := true, true
	for _, s := range raw {
		if naTokens[s] {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			numeric = false
		}
		if _, ok := boolTokens[s]; !ok {
			boolean = false
		}
	}

	colType := domain.ColumnText
	switch {
	case numeric:
		colType = domain.ColumnNumeric
	case boolean:
		colType = domain.ColumnBool
	}

	values := make([]domain.Value, len(raw))
	for i, s := range raw {
		if naTokens[s] {
			continue
		}
		switch colType {
		case domain.ColumnNumeric:
			f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
			values[i] = domain.Number(f)
		case domain.ColumnBool:
			values[i] = domain.Bool(boolTokens[s])
		default:
			values[i] = domain.Text(s)
		}
	}
	return domain.Column{Name: name, Type: colType, Values: values}
}
