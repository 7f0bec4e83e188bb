// Package train implements backpropagation over a single-hidden-layer network
// and the trainers that drive it.
package train

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/nnet/internal/net"
)

// State is the scratch space of one backward pass: the weight deltas,
// carried across calls for momentum, and the error term of every node.
type State struct {
	dinput  *mat.Dense // (in+1) x hidden
	doutput *mat.Dense // (hidden+1) x out
	ehidden []float64
	eoutput []float64
}

// NewState returns a zeroed state for a network with dimensions d.
func NewState(d net.Dims) *State {
	return &State{
		dinput:  mat.NewDense(d.In+1, d.Hidden, nil),
		doutput: mat.NewDense(d.Hidden+1, d.Out, nil),
		ehidden: make([]float64, d.Hidden),
		eoutput: make([]float64, d.Out),
	}
}

// Dims returns the network dimensions the state was built for.
func (s *State) Dims() net.Dims {
	return net.Dims{In: s.dinput.RawMatrix().Rows - 1, Hidden: len(s.ehidden), Out: len(s.eoutput)}
}

// Deltas returns the input-to-hidden and hidden-to-output weight deltas.
func (s *State) Deltas() (dinput, doutput mat.Matrix) {
	return s.dinput, s.doutput
}

// Errors returns the hidden and output error terms of the last backward pass.
func (s *State) Errors() (ehidden, eoutput []float64) {
	return s.ehidden, s.eoutput
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	return &State{
		dinput:  mat.DenseCopyOf(s.dinput),
		doutput: mat.DenseCopyOf(s.doutput),
		ehidden: append([]float64(nil), s.ehidden...),
		eoutput: append([]float64(nil), s.eoutput...),
	}
}

// Combine folds peers into s so that every delta and error slot of s
// becomes the mean of s and all peers. The fold is a running average
// acc = (acc*c + peer) / (c+1) with c starting at 1.
// It panics if a peer was built for different dimensions.
func (s *State) Combine(peers ...*State) {
	d := s.Dims()
	for i, p := range peers {
		if p.Dims() != d {
			panic(fmt.Sprintf("train: combine peer %d has dims %v, want %v", i, p.Dims(), d))
		}
	}

	c := 1.0
	for _, p := range peers {
		w := 1 / (c + 1)
		average(s.dinput, p.dinput, c, w)
		average(s.doutput, p.doutput, c, w)
		averageSlice(s.ehidden, p.ehidden, c, w)
		averageSlice(s.eoutput, p.eoutput, c, w)
		c++
	}
}

func average(acc, m *mat.Dense, c, w float64) {
	acc.Scale(c, acc)
	acc.Add(acc, m)
	acc.Scale(w, acc)
}

func averageSlice(acc, v []float64, c, w float64) {
	floats.Scale(c, acc)
	floats.Add(acc, v)
	floats.Scale(w, acc)
}
