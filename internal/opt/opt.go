// Package opt provides the momentum gradient-descent rule and learning-rate schedules.
package opt

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SGD is stochastic gradient descent with a momentum term.
//
// Each call to Step replaces a delta matrix with
//
//	delta = rate * x * eᵀ + Momentum * delta
//
// so a fraction of the previous delta carries into the next one.
type SGD struct {
	LearningRate Schedule
	Momentum     float64
}

// NewSGD creates an SGD rule with a constant learning rate.
func NewSGD(rate, momentum float64) SGD {
	return SGD{LearningRate: Constant(rate), Momentum: momentum}
}

// Rate returns the learning rate for the given epoch.
func (s SGD) Rate(epoch int) float64 {
	return s.LearningRate.Rate(epoch)
}

// Step updates delta in-place with the outer product of the layer
// activations x and the error terms e of the next layer.
// delta must have shape len(x) × len(e).
func (s SGD) Step(delta *mat.Dense, x, e mat.Vector, rate float64) {
	delta.Scale(s.Momentum, delta)
	delta.RankOne(delta, rate, x, e)
}

// Validate reports configuration errors.
func (s SGD) Validate() error {
	if s.LearningRate == nil {
		return errors.New("opt: learning rate schedule is nil")
	}
	if s.Momentum < 0 {
		return errors.Errorf("opt: momentum must be non-negative, got %v", s.Momentum)
	}
	return nil
}
