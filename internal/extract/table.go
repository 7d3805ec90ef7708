package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// csvText renders a CSV file as a markdown pipe table so the tabular shape
// survives into the flattened document text.
func csvText(data []byte) string {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Sprintf("[CSV_PARSE_ERROR]: %v", err)
	}
	return markdownTable(records)
}

// excelText renders the first sheet of a workbook as a markdown pipe table.
func excelText(data []byte) string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Sprintf("[EXCEL_PARSE_ERROR]: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "[EXCEL_PARSE_ERROR]: workbook has no sheets"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Sprintf("[EXCEL_PARSE_ERROR]: %v", err)
	}
	return markdownTable(rows)
}

// markdownTable renders rows as a pipe table, treating the first row as the
// header. Empty input renders as an empty string.
func markdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(strings.TrimSpace(cell))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|")
	for range rows[0] {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}
