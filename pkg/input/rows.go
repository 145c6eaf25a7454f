package input

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

var ErrUnsupportedFormat = errors.New("unsupported input format")

// A record keyed by column name
type Row = map[string]any

// Reads a CSV file with a header line or a JSON array of objects
func ReadRows(file string) ([]Row, error) {
	handle, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer handle.Close()

	switch extension := strings.ToLower(filepath.Ext(file)); extension {
	case ".csv":
		return ReadCsvRows(handle)
	case ".json":
		var rows []Row
		if err := json.NewDecoder(handle).Decode(&rows); err != nil {
			return nil, fmt.Errorf("parse %v: %w", file, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, extension)
	}
}

// Column names are trimmed and lower-cased, values trimmed
func ReadCsvRows(reader io.Reader) ([]Row, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	header := lo.Map(records[0], func(column string, _ int) string { return strings.ToLower(strings.TrimSpace(column)) })
	return lo.Map(records[1:], func(record []string, _ int) Row {
		row := make(Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = strings.TrimSpace(record[i])
			}
		}
		return row
	}), nil
}

// Decodes every row into T after checking the required columns are present. Errors of all rows are combined
func decodeRows[T any](rows []Row, required []string) ([]T, error) {
	var errs error
	decoded := make([]T, 0, len(rows))

	for index, row := range rows {
		missing := lo.Filter(required, func(column string, _ int) bool {
			_, ok := row[column]
			return !ok
		})
		if len(missing) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("row %v: missing columns %v", index+1, strings.Join(missing, ", ")))
			continue
		}

		var value T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &value,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(row); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %v: %w", index+1, err))
			continue
		}
		decoded = append(decoded, value)
	}
	return decoded, errs
}

// Splits a ';' separated cell, dropping empty entries
func splitList(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ";"), func(item string, _ int) string { return strings.TrimSpace(item) }))
}

func toBoolean(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}
