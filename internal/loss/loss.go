// Package loss provides error functions and error-gradient policies.
package loss

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/nnet/internal/activations"
)

// ErrorFunction scores a prediction against the expected output.
// It is the per-example error averaged by the error-average trainer.
type ErrorFunction interface {
	// Error computes the error between predicted and expected values.
	Error(yPred, yTrue []float64) float64
}

// MSE (Mean Squared Error) error function.
type MSE struct{}

// Error computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Error(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("MSE: prediction and target must have same length")
	}

	d := floats.Distance(yPred, yTrue, 2)
	return d * d / float64(n)
}

// CrossEntropy error function for classification outputs in (0, 1].
type CrossEntropy struct{}

// Error computes cross entropy: -(1/n) * sum(y_true * log(y_pred + eps))
func (c CrossEntropy) Error(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("CrossEntropy: prediction and target must have same length")
	}

	const eps = 1e-10
	var sum float64
	for i := 0; i < n; i++ {
		// Clip prediction to avoid log(0)
		pred := yPred[i]
		if pred < eps {
			pred = eps
		}
		sum -= yTrue[i] * math.Log(pred)
	}
	return sum / float64(n)
}

// Huber error for robust regression.
type Huber struct {
	Delta float64 // Threshold for quadratic/linear transition
}

// NewHuber creates a Huber error function with the given delta.
func NewHuber(delta float64) *Huber {
	return &Huber{Delta: delta}
}

// Error computes the mean Huber loss.
func (h Huber) Error(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("Huber: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := math.Abs(yPred[i] - yTrue[i])
		if diff <= h.Delta {
			sum += 0.5 * diff * diff
		} else {
			sum += h.Delta * (diff - 0.5*h.Delta)
		}
	}
	return sum / float64(n)
}

// Gradient computes the error terms (deltas) of the backward pass.
//
// The returned terms point towards lower error: the trainer adds
// rate * activation * term to each weight.
type Gradient interface {
	// Output computes the error term of an output node from its expected
	// and actual (activated) values.
	Output(expected, actual float64, act activations.Activation) float64

	// Hidden computes the error term of a hidden node from its activated
	// value and the sum of outgoing weights times output error terms.
	Hidden(actual, wsum float64, act activations.Activation) float64
}

// Default is the squared-error gradient: f'(actual) * (expected - actual)
// for outputs and f'(actual) * wsum for hidden nodes.
type Default struct{}

// Output returns f'(actual) * (expected - actual)
func (Default) Output(expected, actual float64, act activations.Activation) float64 {
	return act.Derivative(actual) * (expected - actual)
}

// Hidden returns f'(actual) * wsum
func (Default) Hidden(actual, wsum float64, act activations.Activation) float64 {
	return act.Derivative(actual) * wsum
}
