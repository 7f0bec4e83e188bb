// Package activations provides activation functions for the hidden and output layers.
package activations

import "math"

// Activation is an activation function with derivative.
//
// The network only keeps activated node values, so Derivative is expressed in
// terms of y = Activate(x) rather than the pre-activation sum.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) given y = f(x)
	Derivative(y float64) float64
}

// Sigmoid (logistic) activation function.
type Sigmoid struct{}

// Activate computes 1 / (1 + e^-x)
func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Derivative computes y * (1 - y)
func (s Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - y^2
func (t Tanh) Derivative(y float64) float64 {
	return 1 - y*y
}

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if y > 0, else 0
func (r ReLU) Derivative(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

// LeakyReLU activation function to prevent dying neurons.
type LeakyReLU struct {
	Alpha float64 // Slope for x <= 0
}

// NewLeakyReLU creates a LeakyReLU with the given alpha value.
func NewLeakyReLU(alpha float64) *LeakyReLU {
	return &LeakyReLU{Alpha: alpha}
}

// Activate computes x if x > 0, else alpha*x
func (l *LeakyReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return l.Alpha * x
}

// Derivative returns 1 if y > 0, else alpha.
// Works on y because alpha*x keeps the sign of x for alpha > 0.
func (l *LeakyReLU) Derivative(y float64) float64 {
	if y > 0 {
		return 1
	}
	return l.Alpha
}

// Linear (identity) activation function.
type Linear struct{}

// Activate returns x unchanged
func (l Linear) Activate(x float64) float64 {
	return x
}

// Derivative always returns 1
func (l Linear) Derivative(y float64) float64 {
	return 1
}

// Name returns the registry name of a built-in activation.
// Unknown implementations return the empty string.
func Name(act Activation) string {
	switch act.(type) {
	case Sigmoid, *Sigmoid:
		return "Sigmoid"
	case Tanh, *Tanh:
		return "Tanh"
	case ReLU, *ReLU:
		return "ReLU"
	case *LeakyReLU:
		return "LeakyReLU"
	case Linear, *Linear:
		return "Linear"
	default:
		return ""
	}
}

// ByName returns the built-in activation registered under name.
// LeakyReLU is returned with the default slope of 0.01; callers holding
// a stored slope replace it.
func ByName(name string) (Activation, bool) {
	switch name {
	case "Sigmoid":
		return Sigmoid{}, true
	case "Tanh":
		return Tanh{}, true
	case "ReLU":
		return ReLU{}, true
	case "LeakyReLU":
		return NewLeakyReLU(0.01), true
	case "Linear":
		return Linear{}, true
	default:
		return nil, false
	}
}
