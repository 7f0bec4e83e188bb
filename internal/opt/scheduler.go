package opt

import "math"

// Schedule yields the learning rate for an epoch.
type Schedule interface {
	Rate(epoch int) float64
}

// Constant is a fixed learning rate.
type Constant float64

func (c Constant) Rate(int) float64 { return float64(c) }

// StepDecay decays the learning rate by Gamma every StepSize epochs.
type StepDecay struct {
	Initial  float64
	StepSize int
	Gamma    float64
}

func NewStepDecay(initial float64, stepSize int, gamma float64) StepDecay {
	return StepDecay{Initial: initial, StepSize: stepSize, Gamma: gamma}
}

func (s StepDecay) Rate(epoch int) float64 {
	if s.StepSize <= 0 {
		return s.Initial
	}
	return s.Initial * math.Pow(s.Gamma, float64(epoch/s.StepSize))
}

// ExponentialDecay decays the learning rate by Gamma every epoch.
type ExponentialDecay struct {
	Initial float64
	Gamma   float64
}

func NewExponentialDecay(initial, gamma float64) ExponentialDecay {
	return ExponentialDecay{Initial: initial, Gamma: gamma}
}

func (s ExponentialDecay) Rate(epoch int) float64 {
	return s.Initial * math.Pow(s.Gamma, float64(epoch))
}
