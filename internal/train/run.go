package train

import (
	"iter"
	"math"

	"github.com/FlavioCFOliveira/nnet/internal/net"
)

// Epochs returns an iterator over the epochs of t. Each step trains one
// epoch; the sequence ends when t terminates or the loop breaks.
func Epochs(t Trainer) iter.Seq[Progress] {
	return func(yield func(Progress) bool) {
		for {
			p, ok := t.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Stopper is implemented by callbacks that can end a run early.
type Stopper interface {
	ShouldStop() bool
}

// Run trains t until it terminates or a Stopper callback asks to stop,
// and returns the last progress.
func Run(t Trainer, callbacks ...Callback) Progress {
	n := t.Network()
	for _, c := range callbacks {
		c.OnTrainBegin(n)
	}

	last := Progress{Error: math.NaN()}
	for p := range Epochs(t) {
		last = p
		if epochEnd(callbacks, p, n) {
			break
		}
	}

	for _, c := range callbacks {
		c.OnTrainEnd(n)
	}
	return last
}

// epochEnd notifies every callback of p and reports whether one of them
// asked to stop.
func epochEnd(callbacks []Callback, p Progress, n *net.Network) bool {
	stop := false
	for _, c := range callbacks {
		c.OnEpochEnd(p, n)
		if s, ok := c.(Stopper); ok && s.ShouldStop() {
			stop = true
		}
	}
	return stop
}
