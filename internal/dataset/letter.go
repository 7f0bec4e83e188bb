package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// LetterFeatures is the number of attributes per row of the UCI letter
// recognition data set.
const LetterFeatures = 16

// LoadLetters loads a letter recognition file. See ReadLetters.
func LoadLetters(filename string, target string) ([]Example, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: open letters")
	}
	defer file.Close()

	set, err := ReadLetters(file, target)
	return set, errors.Wrapf(err, "dataset: %s", filename)
}

// ReadLetters reads rows of the form "<letter>,<16 integer attributes>".
// Each example expects 1 when the row's letter equals target and 0 otherwise.
func ReadLetters(r io.Reader, target string) ([]Example, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = LetterFeatures + 1
	cr.TrimLeadingSpace = true

	var set []Example
	for row := 0; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read letters")
		}

		e := Example{Input: make([]float64, LetterFeatures), Expected: []float64{0}}
		if record[0] == target {
			e.Expected[0] = 1
		}
		for j, s := range record[1:] {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, attribute %d", row, j)
			}
			e.Input[j] = float64(v)
		}
		set = append(set, e)
	}
	if len(set) == 0 {
		return nil, errors.New("no letter rows")
	}
	return set, nil
}
