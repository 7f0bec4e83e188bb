package train

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/nnet/internal/net"
)

// scriptedTrainer reports a fixed sequence of epoch errors without training.
type scriptedTrainer struct {
	n      *net.Network
	errors []float64
	epoch  int
}

func (s *scriptedTrainer) Next() (Progress, bool) {
	if s.epoch >= len(s.errors) {
		return Progress{}, false
	}
	s.epoch++
	return Progress{Epoch: s.epoch, Error: s.errors[s.epoch-1]}, true
}

func (s *scriptedTrainer) Network() *net.Network { return s.n }

// countingCallback counts the hooks it receives.
type countingCallback struct {
	BaseCallback
	begin, epochs, end int
}

func (c *countingCallback) OnTrainBegin(*net.Network)         { c.begin++ }
func (c *countingCallback) OnEpochEnd(Progress, *net.Network) { c.epochs++ }
func (c *countingCallback) OnTrainEnd(*net.Network)           { c.end++ }

// TestRunCallbacks tests the hook sequence of a full run.
func TestRunCallbacks(t *testing.T) {
	tr := &scriptedTrainer{n: linearNet(t), errors: []float64{0.5, 0.4, 0.3}}
	c := &countingCallback{}

	p := Run(tr, c)

	assert.Equal(t, Progress{Epoch: 3, Error: 0.3}, p)
	assert.Equal(t, 1, c.begin)
	assert.Equal(t, 3, c.epochs)
	assert.Equal(t, 1, c.end)
}

// TestEarlyStopping tests that Run halts once the error stops improving.
func TestEarlyStopping(t *testing.T) {
	tr := &scriptedTrainer{n: linearNet(t), errors: []float64{1, 0.5, 0.6, 0.7, 0.8, 0.9}}
	es := NewEarlyStopping(2, 0)
	c := &countingCallback{}

	p := Run(tr, es, c)

	assert.Equal(t, 4, p.Epoch)
	assert.True(t, es.ShouldStop())
	assert.Equal(t, 4, c.epochs, "other callbacks still see the last epoch")
	assert.Equal(t, 1, c.end)
}

// TestEarlyStoppingIgnoresUnmeasured tests that epochs without an error never stop a run.
func TestEarlyStoppingIgnoresUnmeasured(t *testing.T) {
	nan := math.NaN()
	tr := &scriptedTrainer{n: linearNet(t), errors: []float64{nan, nan, nan, nan}}
	es := NewEarlyStopping(1, 0)

	p := Run(tr, es)

	assert.Equal(t, 4, p.Epoch)
	assert.False(t, es.ShouldStop())
}

// TestModelCheckpoint tests that the network is saved on improvement only.
func TestModelCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.gob")
	n := linearNet(t)
	c := NewModelCheckpoint(path)

	c.OnEpochEnd(Progress{Epoch: 1, Error: math.NaN()}, n)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	c.OnEpochEnd(Progress{Epoch: 2, Error: 0.5}, n)
	saved, err := net.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, saved.Node(net.WeightInputHidden(0, 0)))

	n.SetNode(net.WeightInputHidden(0, 0), 9)
	c.OnEpochEnd(Progress{Epoch: 3, Error: 0.7}, n)
	saved, err = net.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, saved.Node(net.WeightInputHidden(0, 0)), "worse epochs are not saved")
}

// TestLogger tests interval logging.
func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	tr := &scriptedTrainer{n: linearNet(t), errors: []float64{0.4, 0.3, math.NaN(), 0.1}}

	Run(tr, Logger{Interval: 2, Log: slog.New(slog.NewTextHandler(&buf, nil))})

	out := buf.String()
	assert.Contains(t, out, "epoch=2 error=0.3")
	assert.Contains(t, out, "epoch=4 error=0.1")
	assert.NotContains(t, out, "epoch=1")
	assert.NotContains(t, out, "epoch=3")
}

// TestCSVLogger tests the epoch rows written to the CSV file.
func TestCSVLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	tr := &scriptedTrainer{n: linearNet(t), errors: []float64{0.5, 0.4}}

	Run(tr, NewCSVLogger(path, false))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"epoch", "error", "time_seconds"}, records[0])
	assert.Equal(t, []string{"1", "0.500000"}, records[1][:2])
	assert.Equal(t, []string{"2", "0.400000"}, records[2][:2])
}

// TestCSVLoggerAppend tests that appending keeps a single header.
func TestCSVLoggerAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")

	Run(&scriptedTrainer{n: linearNet(t), errors: []float64{0.5}}, NewCSVLogger(path, true))
	Run(&scriptedTrainer{n: linearNet(t), errors: []float64{0.25}}, NewCSVLogger(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "0.250000", records[2][1])
}
