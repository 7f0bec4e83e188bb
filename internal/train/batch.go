package train

import (
	"math"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// BatchEpochTrainer accumulates deltas over the whole set and updates the
// weights once per epoch.
type BatchEpochTrainer struct {
	base
}

// NewBatchEpochTrainer creates a batch trainer running maxEpochs epochs.
func NewBatchEpochTrainer(n *net.Network, set []dataset.Example, p params.Training, maxEpochs int) (*BatchEpochTrainer, error) {
	b, err := newBase(n, set, p, maxEpochs)
	if err != nil {
		return nil, err
	}
	return &BatchEpochTrainer{base: b}, nil
}

func (t *BatchEpochTrainer) Next() (Progress, bool) {
	if !t.more() {
		return Progress{}, false
	}
	for _, ex := range t.set {
		UpdateState(t.net, ex, t.st, t.p, t.epoch)
	}
	UpdateWeights(t.net, t.st)
	return t.advance(math.NaN()), true
}

// Train runs the remaining epochs and returns the last progress.
func (t *BatchEpochTrainer) Train() Progress { return drive(t) }
