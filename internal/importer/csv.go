package importer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// csvColumns is the number of positional columns a product row carries.
const csvColumns = 5

// csvRecord maps columns by position: name, SKU, image URL, an unused
// column, and the description as JSON.
type csvRecord struct {
	Name        string `csv:"name"`
	SKU         string `csv:"sku"`
	Image       string `csv:"image"`
	Unused      string `csv:"unused"`
	Description string `csv:"description"`
}

// rowsReader replays already parsed rows to gocsv.
type rowsReader struct {
	rows [][]string
	pos  int
}

func (r *rowsReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}

// parseCSV reads every row, drops a leading header, and decodes the rest
// into records. Rows are padded or cut to csvColumns so ragged input never
// misaligns the positional mapping.
func parseCSV(in io.Reader) (records []csvRecord, header bool, err error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, false, errors.Wrap(err, "read csv")
	}

	normalized := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		fixed := make([]string, csvColumns)
		copy(fixed, row)
		normalized = append(normalized, fixed)
	}

	if len(normalized) > 0 && looksLikeHeader(normalized[0]) {
		header = true
		normalized = normalized[1:]
	}
	if len(normalized) == 0 {
		return []csvRecord{}, header, nil
	}

	if err := gocsv.UnmarshalCSVWithoutHeaders(&rowsReader{rows: normalized}, &records); err != nil {
		return nil, header, errors.Wrap(err, "decode csv rows")
	}
	return records, header, nil
}

func looksLikeHeader(row []string) bool {
	joined := strings.ToLower(strings.Join(row, ","))
	return strings.Contains(joined, "name") && strings.Contains(joined, "sku")
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
