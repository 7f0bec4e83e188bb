// Package params bundles the numeric policies used to build and train a network.
package params

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/nnet/internal/activations"
	"github.com/FlavioCFOliveira/nnet/internal/loss"
	"github.com/FlavioCFOliveira/nnet/internal/opt"
)

// WeightInit produces initial connection weights for a layer with ins
// incoming and outs outgoing nodes.
type WeightInit interface {
	Weight(ins, outs int) float64
}

// BiasFunc produces the constant value of a layer's bias node.
type BiasFunc interface {
	Bias() float64
}

// FanIn draws weights uniformly from [-1/sqrt(ins), 1/sqrt(ins)).
// A nil Rand uses the global source.
type FanIn struct {
	Rand *rand.Rand
}

func (f FanIn) Weight(ins, _ int) float64 {
	b := 1 / math.Sqrt(float64(ins))
	return uniform(f.Rand, -b, b)
}

// Xavier draws weights uniformly from [-s, s) with s = sqrt(2 / (ins + outs)).
type Xavier struct {
	Rand *rand.Rand
}

func (x Xavier) Weight(ins, outs int) float64 {
	s := math.Sqrt(2.0 / (float64(ins) + float64(outs)))
	return uniform(x.Rand, -s, s)
}

// ConstantBias sets every bias node to the same value.
type ConstantBias float64

func (c ConstantBias) Bias() float64 { return float64(c) }

// RandomBias draws a bias value from [-0.5, 0.5).
type RandomBias struct {
	Rand *rand.Rand
}

func (r RandomBias) Bias() float64 {
	return uniform(r.Rand, -0.5, 0.5)
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	var u float64
	if r != nil {
		u = r.Float64()
	} else {
		u = rand.Float64()
	}
	return lo + u*(hi-lo)
}

// Network holds the policies consumed when a network is constructed and run.
type Network struct {
	Activation activations.Activation
	Weights    WeightInit
	Bias       BiasFunc
}

// Validate reports missing policies.
func (p Network) Validate() error {
	switch {
	case p.Activation == nil:
		return errors.New("params: activation is nil")
	case p.Weights == nil:
		return errors.New("params: weight initializer is nil")
	case p.Bias == nil:
		return errors.New("params: bias function is nil")
	}
	return nil
}

// Logistic returns sigmoid network policies with a -1 bias node.
func Logistic(r *rand.Rand) Network {
	return Network{
		Activation: activations.Sigmoid{},
		Weights:    FanIn{Rand: r},
		Bias:       ConstantBias(-1),
	}
}

// Tanh returns tanh network policies with a +1 bias node.
func Tanh(r *rand.Rand) Network {
	return Network{
		Activation: activations.Tanh{},
		Weights:    FanIn{Rand: r},
		Bias:       ConstantBias(1),
	}
}

// Training holds the policies consumed by the backward pass and trainers.
type Training struct {
	Optimizer opt.SGD
	Gradient  loss.Gradient
	Error     loss.ErrorFunction
}

// DefaultTraining returns a constant learning rate with momentum, the
// squared-error gradient and MSE as the reported error.
func DefaultTraining(rate, momentum float64) Training {
	return Training{
		Optimizer: opt.NewSGD(rate, momentum),
		Gradient:  loss.Default{},
		Error:     loss.MSE{},
	}
}

// Validate reports missing or invalid policies.
func (p Training) Validate() error {
	if err := p.Optimizer.Validate(); err != nil {
		return errors.Wrap(err, "params: invalid optimizer")
	}
	if p.Gradient == nil {
		return errors.New("params: error gradient is nil")
	}
	if p.Error == nil {
		return errors.New("params: error function is nil")
	}
	return nil
}
