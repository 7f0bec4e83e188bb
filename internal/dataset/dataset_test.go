package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFits tests the dimension check of an example.
func TestFits(t *testing.T) {
	e := Example{Input: []float64{0, 1}, Expected: []float64{1}}

	assert.True(t, e.Fits(2, 1))
	assert.False(t, e.Fits(3, 1))
	assert.False(t, e.Fits(2, 2))
}

// TestCheck tests that the first misfit example is reported.
func TestCheck(t *testing.T) {
	set := []Example{
		{Input: []float64{0, 1}, Expected: []float64{1}},
		{Input: []float64{0}, Expected: []float64{1}},
	}

	assert.NoError(t, Check(set[:1], 2, 1))

	err := Check(set, 2, 1)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "example 1")
}

// TestLoadCSV tests feature and label column selection.
func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	data := "f1,f2,l1,f3,l2\n1.0,2.0,0.0,3.0,1.0\n4.0,5.0,1.0,6.0,0.0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	set, err := LoadCSV(path, []int{4, 2}, true)
	require.NoError(t, err)

	assert.Equal(t, []Example{
		{Input: []float64{1, 2, 3}, Expected: []float64{1, 0}},
		{Input: []float64{4, 5, 6}, Expected: []float64{0, 1}},
	}, set)
}

// TestReadCSVErrors tests malformed input.
func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		labels []int
		header bool
	}{
		{"empty", "", []int{0}, false},
		{"header only", "a,b\n", []int{0}, true},
		{"not a number", "1,x\n", []int{0}, false},
		{"label out of range", "1,2\n", []int{2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), tt.labels, tt.header)
			assert.Error(t, err)
		})
	}
}

// TestLoadCSVMissingFile tests that open errors are reported.
func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), nil, false)
	assert.Error(t, err)
}

// TestNormalize tests min-max scaling of inputs.
func TestNormalize(t *testing.T) {
	set := []Example{
		{Input: []float64{10, 0, 7}, Expected: []float64{10}},
		{Input: []float64{20, 5, 7}, Expected: []float64{20}},
		{Input: []float64{30, 10, 7}, Expected: []float64{30}},
	}

	Normalize(set)

	assert.Equal(t, []float64{0, 0, 0}, set[0].Input)
	assert.Equal(t, []float64{0.5, 0.5, 0}, set[1].Input)
	assert.Equal(t, []float64{1, 1, 0}, set[2].Input)
	assert.Equal(t, []float64{20}, set[1].Expected, "expected values are not scaled")
}

// TestSplit tests the train/test split.
func TestSplit(t *testing.T) {
	set := make([]Example, 9)

	train, test := Split(set, 2.0/3.0)
	assert.Len(t, train, 6)
	assert.Len(t, test, 3)

	train, test = Split(set, 0)
	assert.Empty(t, train)
	assert.Len(t, test, 9)

	train, test = Split(set, 1.5)
	assert.Len(t, train, 9)
	assert.Empty(t, test)
}

// TestReadLetters tests the letter recognition row format.
func TestReadLetters(t *testing.T) {
	data := "A,2,8,3,5,1,8,13,0,6,6,10,8,0,8,0,8\n" +
		"T,7,10,5,5,4,6,8,3,6,9,7,8,4,10,3,7\n"

	set, err := ReadLetters(strings.NewReader(data), "A")
	require.NoError(t, err)
	require.Len(t, set, 2)

	assert.Equal(t, []float64{1}, set[0].Expected)
	assert.Equal(t, []float64{0}, set[1].Expected)
	assert.Len(t, set[0].Input, LetterFeatures)
	assert.Equal(t, 2.0, set[0].Input[0])
	assert.Equal(t, 7.0, set[1].Input[15])
}

// TestReadLettersErrors tests malformed letter rows.
func TestReadLettersErrors(t *testing.T) {
	for _, data := range []string{
		"",
		"A,1,2,3\n",
		"A,2,8,3,5,1,8,13,0,6,6,10,8,0,8,0,x\n",
	} {
		_, err := ReadLetters(strings.NewReader(data), "A")
		assert.Error(t, err, "input %q", data)
	}
}
