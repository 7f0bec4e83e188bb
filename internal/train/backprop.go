package train

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// UpdateState runs one backward pass of ex through n and accumulates the
// resulting weight deltas into st. The weights of n are read but not
// changed; the activations of n hold the prediction for ex afterwards.
//
// UpdateState panics if ex does not fit the dimensions of n or st.
func UpdateState(n *net.Network, ex dataset.Example, st *State, p params.Training, epoch int) {
	out := n.Predict(ex.Input)
	if len(ex.Expected) != len(out) {
		panic(fmt.Sprintf("train: example has %d expected values, network has %d outputs", len(ex.Expected), len(out)))
	}

	act := n.Activation()
	rate := p.Optimizer.Rate(epoch)
	input := n.Layer(net.InputLayer)
	hidden := n.Layer(net.HiddenLayer)

	for i, y := range out {
		st.eoutput[i] = p.Gradient.Output(ex.Expected[i], y, act)
	}
	p.Optimizer.Step(st.doutput,
		mat.NewVecDense(len(hidden), hidden),
		mat.NewVecDense(len(st.eoutput), st.eoutput),
		rate)

	_, who := n.Weights()
	for i := range st.ehidden {
		var wsum float64
		for j, e := range st.eoutput {
			wsum += who.At(i, j) * e
		}
		st.ehidden[i] = p.Gradient.Hidden(hidden[i], wsum, act)
	}
	p.Optimizer.Step(st.dinput,
		mat.NewVecDense(len(input), input),
		mat.NewVecDense(len(st.ehidden), st.ehidden),
		rate)
}

// UpdateWeights adds the deltas accumulated in st to the weights of n.
func UpdateWeights(n *net.Network, st *State) {
	n.AddDeltas(st.dinput, st.doutput)
}
