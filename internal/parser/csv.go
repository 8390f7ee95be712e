package parser

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"strings"
)

// Row is one CSV record keyed by canonical column name.
type Row map[string]string

// Canonical column names produced by ReadRows.
const (
	ColUserID = "UserID"
	ColName   = "EmployeeName"
	ColDate   = "Date"
	ColTime   = "Time"
)

// Header variants the device exports have been seen to use.
var headerAliases = map[string]string{
	"userid":       ColUserID,
	"user_id":      ColUserID,
	"employeename": ColName,
	"name":         ColName,
	"date":         ColDate,
	"time":         ColTime,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRows reads every record of one export file into field mappings with
// canonicalized header keys. A file that does not exist or cannot be parsed
// yields no rows; that is logged, never surfaced as an error. Each call
// re-reads the file from the start.
func ReadRows(path string, log *slog.Logger) []Row {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read export file", "file", path, "error", err)
		return nil
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		log.Warn("failed to parse export file", "file", path, "error", err)
		return nil
	}
	if len(records) < 2 {
		return nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = canonicalHeader(h)
	}

	var rows []Row
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(Row, len(headers))
		for i, field := range record {
			if i >= len(headers) {
				break
			}
			row[headers[i]] = strings.TrimSpace(field)
		}
		rows = append(rows, row)
	}

	return rows
}

func canonicalHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	h = strings.TrimSpace(h)
	if canonical, ok := headerAliases[strings.ToLower(h)]; ok {
		return canonical
	}
	return h
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
