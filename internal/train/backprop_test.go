package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/opt"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// With linear activations, all weights 0.5, bias 1 and input 1:
// hidden = [1, 1], output = 1, eoutput = 2 - 1 = 1, ehidden = 0.5 * 1.
var oneExample = dataset.Example{Input: []float64{1}, Expected: []float64{2}}

// TestUpdateState tests one backward pass against hand-computed values.
func TestUpdateState(t *testing.T) {
	n := linearNet(t)
	st := NewState(n.Dims())

	UpdateState(n, oneExample, st, params.DefaultTraining(0.1, 0), 0)

	eh, eo := st.Errors()
	assert.InDeltaSlice(t, []float64{1}, eo, 1e-12)
	assert.InDeltaSlice(t, []float64{0.5}, eh, 1e-12)

	dinput, doutput := st.Deltas()
	assert.True(t, mat.EqualApprox(doutput, mat.NewDense(2, 1, []float64{0.1, 0.1}), 1e-12))
	assert.True(t, mat.EqualApprox(dinput, mat.NewDense(2, 1, []float64{0.05, 0.05}), 1e-12))

	assert.Equal(t, 0.5, n.Node(net.WeightInputHidden(0, 0)), "weights are read only")
	assert.Equal(t, 1.0, n.Node(net.Output(0)), "prediction stays in the network")
}

// TestUpdateStateMomentum tests that the previous delta is carried over.
func TestUpdateStateMomentum(t *testing.T) {
	n := linearNet(t)
	st := NewState(n.Dims())
	p := params.DefaultTraining(0.1, 0.5)

	UpdateState(n, oneExample, st, p, 0)
	UpdateState(n, oneExample, st, p, 1)

	// 0.1 + 0.5 * 0.1
	_, doutput := st.Deltas()
	assert.InDelta(t, 0.15, doutput.At(0, 0), 1e-12)
}

// TestUpdateStateSchedule tests that the rate comes from the epoch's schedule.
func TestUpdateStateSchedule(t *testing.T) {
	n := linearNet(t)
	st := NewState(n.Dims())
	p := params.DefaultTraining(0, 0)
	p.Optimizer.LearningRate = opt.NewStepDecay(0.1, 1, 0.5)

	UpdateState(n, oneExample, st, p, 1)

	_, doutput := st.Deltas()
	assert.InDelta(t, 0.05, doutput.At(0, 0), 1e-12)
}

// TestUpdateStateWrongExpectedPanics tests the output length contract.
func TestUpdateStateWrongExpectedPanics(t *testing.T) {
	n := linearNet(t)
	st := NewState(n.Dims())
	ex := dataset.Example{Input: []float64{1}, Expected: []float64{1, 2}}

	assert.Panics(t, func() { UpdateState(n, ex, st, params.DefaultTraining(0.1, 0), 0) })
}

// TestUpdateWeights tests that deltas are added to the weights.
func TestUpdateWeights(t *testing.T) {
	n := linearNet(t)
	st := NewState(n.Dims())
	UpdateState(n, oneExample, st, params.DefaultTraining(0.1, 0), 0)

	UpdateWeights(n, st)

	assert.InDelta(t, 0.55, n.Node(net.WeightInputHidden(0, 0)), 1e-12)
	assert.InDelta(t, 0.55, n.Node(net.WeightInputHidden(1, 0)), 1e-12)
	assert.InDelta(t, 0.6, n.Node(net.WeightHiddenOutput(0, 0)), 1e-12)
	assert.InDelta(t, 0.6, n.Node(net.WeightHiddenOutput(1, 0)), 1e-12)
}

// TestBackwardPassReducesError tests that one step moves the output towards the target.
func TestBackwardPassReducesError(t *testing.T) {
	n := logisticNet(t, 2, 3, 1, 11)
	st := NewState(n.Dims())
	ex := dataset.Example{Input: []float64{1, 0}, Expected: []float64{1}}

	before := 1 - n.Predict(ex.Input)[0]
	UpdateState(n, ex, st, params.DefaultTraining(0.5, 0), 0)
	UpdateWeights(n, st)
	after := 1 - n.Predict(ex.Input)[0]

	require.Greater(t, before, 0.0)
	assert.Less(t, after, before)
}
