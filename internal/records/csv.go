// Package records reads observation rows for training. Each row is a list of
// numbers whose last column is the observed duration.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned for cells that are not numbers.
var ErrMalformedRecord = errors.New("malformed record")

// ReadCSV parses rows from comma separated input. A first line where no cell
// is a number is taken as a header and skipped. Blank lines are ignored and every
// row must have the same number of columns.
func ReadCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows [][]float64
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, perr)
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if line == 1 && isHeader(rec) {
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			l, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, l, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	for _, cell := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return false
		}
	}
	return true
}

func parseRow(rec []string) ([]float64, error) {
	row := make([]float64, len(rec))
	for i, cell := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %q is not a number", i+1, cell)
		}
		row[i] = v
	}
	return row, nil
}
