package records

import (
	"encoding/csv"
	"errors"
	"io"

	"hermannm.dev/wrap"
)

// Record is one flat source record: column name to raw field text.
// Dimension selectors and aggregation extractors pick their fields out of it.
type Record map[string]string

// ErrNoHeader signals tabular input without a usable header row.
var ErrNoHeader = errors.New("records: input has no header row")

// FromCSV reads comma-separated records. The first row names the columns;
// every following row becomes one Record keyed by those names. Rows must have
// as many fields as the header.
func FromCSV(input io.Reader) ([]Record, error) {
	reader := csv.NewReader(input)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, wrap.Error(err, "failed to read CSV header row")
	}
	var records []Record
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrap.Errorf(err, "failed to read row %d of CSV input", row)
		}
		record := make(Record, len(header))
		for i, name := range header {
			record[name] = fields[i]
		}
		records = append(records, record)
	}
	tracer().Debugf("read %d CSV records with %d columns", len(records), len(header))
	return records, nil
}
