package train

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// ErrorAverageTrainer updates the weights after every example and stops
// once the mean error of an epoch drops to the target or the epoch bound
// is reached.
type ErrorAverageTrainer struct {
	base
	target float64
}

// NewErrorAverageTrainer creates a trainer stopping at target mean error.
// The per-example error is p.Error applied to the prediction made during
// that example's update.
func NewErrorAverageTrainer(n *net.Network, set []dataset.Example, p params.Training, target float64, maxEpochs int) (*ErrorAverageTrainer, error) {
	if !(target > 0) {
		return nil, errors.Wrapf(ErrInvalidTarget, "got %v", target)
	}
	b, err := newBase(n, set, p, maxEpochs)
	if err != nil {
		return nil, err
	}
	return &ErrorAverageTrainer{base: b, target: target}, nil
}

func (t *ErrorAverageTrainer) Next() (Progress, bool) {
	if !t.more() {
		return Progress{}, false
	}

	var sum float64
	for _, ex := range t.set {
		UpdateState(t.net, ex, t.st, t.p, t.epoch)
		sum += t.p.Error.Error(t.net.Layer(net.OutputLayer), ex.Expected)
		UpdateWeights(t.net, t.st)
	}
	mean := sum / float64(len(t.set))
	if mean <= t.target {
		t.done = true
	}
	return t.advance(mean), true
}

// Train runs until the target or the epoch bound is reached and returns
// the last progress.
func (t *ErrorAverageTrainer) Train() Progress { return drive(t) }
