// Package net provides the single-hidden-layer network type.
package net

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/nnet/internal/activations"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// ErrInvalidDimensions is returned when a network is built with a
// non-positive layer size.
var ErrInvalidDimensions = errors.New("net: layer sizes must be positive")

// Dims holds the layer sizes of a network, bias nodes excluded.
type Dims struct {
	In, Hidden, Out int
}

// Network is a feedforward network with one hidden layer.
//
// The input and hidden layers carry a trailing bias node whose value is set
// at construction and never overwritten. Predict writes the activations of
// every other node in place, so a Network must not be shared between
// goroutines without synchronization.
type Network struct {
	act activations.Activation

	input  []float64 // in+1, bias last
	hidden []float64 // hidden+1, bias last
	output []float64

	wih *mat.Dense // (in+1) x hidden
	who *mat.Dense // (hidden+1) x out

	// Views over the activation slices used by the forward pass.
	inVec  *mat.VecDense
	hidVec *mat.VecDense
	hidSum *mat.VecDense
	outSum *mat.VecDense
}

// New creates a network with in inputs, hidden hidden units and out outputs.
// Weights are drawn from p.Weights with the fan of each layer and each
// layer's bias node gets a single value from p.Bias.
func New(in, hidden, out int, p params.Network) (*Network, error) {
	if in <= 0 || hidden <= 0 || out <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %dx%dx%d", in, hidden, out)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := alloc(Dims{in, hidden, out}, p.Activation)
	fill(n.wih, func() float64 { return p.Weights.Weight(in, hidden) })
	fill(n.who, func() float64 { return p.Weights.Weight(hidden, out) })
	n.input[in] = p.Bias.Bias()
	n.hidden[hidden] = p.Bias.Bias()

	return n, nil
}

func alloc(d Dims, act activations.Activation) *Network {
	n := &Network{
		act:    act,
		input:  make([]float64, d.In+1),
		hidden: make([]float64, d.Hidden+1),
		output: make([]float64, d.Out),
		wih:    mat.NewDense(d.In+1, d.Hidden, nil),
		who:    mat.NewDense(d.Hidden+1, d.Out, nil),
	}
	n.views()
	return n
}

func (n *Network) views() {
	h := len(n.hidden) - 1
	n.inVec = mat.NewVecDense(len(n.input), n.input)
	n.hidVec = mat.NewVecDense(len(n.hidden), n.hidden)
	n.hidSum = mat.NewVecDense(h, n.hidden[:h])
	n.outSum = mat.NewVecDense(len(n.output), n.output)
}

func fill(m *mat.Dense, f func() float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, f())
		}
	}
}

// Dims returns the layer sizes, bias nodes excluded.
func (n *Network) Dims() Dims {
	return Dims{In: len(n.input) - 1, Hidden: len(n.hidden) - 1, Out: len(n.output)}
}

// Activation returns the activation applied to hidden and output nodes.
func (n *Network) Activation() activations.Activation {
	return n.act
}

// Predict runs the forward pass for x and returns the output layer.
// The returned slice is the network's own output layer and is overwritten
// by the next call. Predict panics if len(x) differs from the input size.
func (n *Network) Predict(x []float64) []float64 {
	in := len(n.input) - 1
	if len(x) != in {
		panic(fmt.Sprintf("net: predict with %d inputs, network has %d", len(x), in))
	}
	copy(n.input[:in], x)

	n.hidSum.MulVec(n.wih.T(), n.inVec)
	n.activate(n.hidden[:len(n.hidden)-1])

	n.outSum.MulVec(n.who.T(), n.hidVec)
	n.activate(n.output)

	return n.output
}

func (n *Network) activate(v []float64) {
	for i, x := range v {
		v[i] = n.act.Activate(x)
	}
}

// Weights returns the input-to-hidden and hidden-to-output weight matrices.
// Callers must not modify them; use AddDeltas or SetNode.
func (n *Network) Weights() (wih, who mat.Matrix) {
	return n.wih, n.who
}

// AddDeltas adds dinput to the input-to-hidden weights and doutput to the
// hidden-to-output weights. It panics if the shapes do not match.
func (n *Network) AddDeltas(dinput, doutput mat.Matrix) {
	n.wih.Add(n.wih, dinput)
	n.who.Add(n.who, doutput)
}

// CopyWeights overwrites the weights and activations of n with those of src.
// It panics if the dimensions differ.
func (n *Network) CopyWeights(src *Network) {
	if n.Dims() != src.Dims() {
		panic(fmt.Sprintf("net: copy from %v into %v", src.Dims(), n.Dims()))
	}
	n.wih.Copy(src.wih)
	n.who.Copy(src.who)
	copy(n.input, src.input)
	copy(n.hidden, src.hidden)
	copy(n.output, src.output)
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() *Network {
	c := alloc(n.Dims(), n.act)
	c.CopyWeights(n)
	return c
}

// String renders the activations and weights for diagnostics.
func (n *Network) String() string {
	var b strings.Builder
	d := n.Dims()
	name := activations.Name(n.act)
	if name == "" {
		name = fmt.Sprintf("%T", n.act)
	}
	fmt.Fprintf(&b, "Network %dx%dx%d (%s)\n", d.In, d.Hidden, d.Out, name)
	fmt.Fprintf(&b, "input:  %v\n", n.input)
	fmt.Fprintf(&b, "hidden: %v\n", n.hidden)
	fmt.Fprintf(&b, "output: %v\n", n.output)
	fmt.Fprintf(&b, "input->hidden:\n%v\n", mat.Formatted(n.wih, mat.Prefix(""), mat.Squeeze()))
	fmt.Fprintf(&b, "hidden->output:\n%v", mat.Formatted(n.who, mat.Prefix(""), mat.Squeeze()))
	return b.String()
}
