// Package dataset provides training examples and loaders for them.
package dataset

import "github.com/pkg/errors"

// ErrDimensionMismatch is returned when an example does not fit a network.
var ErrDimensionMismatch = errors.New("dataset: example does not fit network dimensions")

// Example is one member of a training set. It is never modified by training.
type Example struct {
	Input    []float64
	Expected []float64
}

// Fits reports whether e has in inputs and out expected outputs.
func (e Example) Fits(in, out int) bool {
	return len(e.Input) == in && len(e.Expected) == out
}

// Check returns an error naming the first example of set that does not fit.
func Check(set []Example, in, out int) error {
	for i, e := range set {
		if !e.Fits(in, out) {
			return errors.Wrapf(ErrDimensionMismatch,
				"example %d has %d inputs and %d outputs, want %d and %d",
				i, len(e.Input), len(e.Expected), in, out)
		}
	}
	return nil
}
