package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// LoadCSV loads examples from a CSV file.
// labelCols are the columns used, in that order, as expected outputs.
// All other columns are inputs. hasHeader skips the first line.
func LoadCSV(filename string, labelCols []int, hasHeader bool) ([]Example, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: open csv")
	}
	defer file.Close()

	set, err := ReadCSV(file, labelCols, hasHeader)
	return set, errors.Wrapf(err, "dataset: %s", filename)
}

// ReadCSV reads examples from r. See LoadCSV.
func ReadCSV(r io.Reader, labelCols []int, hasHeader bool) ([]Example, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}

	start := 0
	if hasHeader {
		start = 1
	}
	if len(records) <= start {
		return nil, errors.New("csv has no data rows")
	}

	numCols := len(records[start])
	isLabel := make(map[int]bool, len(labelCols))
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, errors.Errorf("label column %d out of range [0, %d)", col, numCols)
		}
		isLabel[col] = true
	}

	set := make([]Example, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Errorf("row %d has %d columns, want %d", i, len(record), numCols)
		}

		values := make([]float64, numCols)
		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, col %d", i, j)
			}
			values[j] = v
		}

		e := Example{
			Input:    make([]float64, 0, numCols-len(isLabel)),
			Expected: make([]float64, 0, len(labelCols)),
		}
		for j, v := range values {
			if !isLabel[j] {
				e.Input = append(e.Input, v)
			}
		}
		for _, col := range labelCols {
			e.Expected = append(e.Expected, values[col])
		}
		set = append(set, e)
	}
	return set, nil
}

// Normalize rescales every input feature of set to [0, 1] in place.
// Constant features become 0.
func Normalize(set []Example) {
	if len(set) == 0 {
		return
	}

	lo := append([]float64(nil), set[0].Input...)
	hi := append([]float64(nil), set[0].Input...)
	for _, e := range set {
		for i, v := range e.Input {
			lo[i] = min(lo[i], v)
			hi[i] = max(hi[i], v)
		}
	}

	span := make([]float64, len(hi))
	floats.SubTo(span, hi, lo)
	for _, e := range set {
		for i := range e.Input {
			if span[i] != 0 {
				e.Input[i] = (e.Input[i] - lo[i]) / span[i]
			} else {
				e.Input[i] = 0
			}
		}
	}
}

// Split divides set at ratio (0 to 1) into a training and a test part.
// Both parts share storage with set.
func Split(set []Example, ratio float64) (train, test []Example) {
	switch {
	case ratio <= 0:
		return nil, set
	case ratio >= 1:
		return set, nil
	}
	idx := int(float64(len(set)) * ratio)
	return set[:idx], set[idx:]
}
