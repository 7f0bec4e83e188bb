package train

import (
	"math"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// SeqEpochTrainer updates the weights after every example and stops after
// a fixed number of epochs.
type SeqEpochTrainer struct {
	base
}

// NewSeqEpochTrainer creates a sequential trainer running maxEpochs epochs.
func NewSeqEpochTrainer(n *net.Network, set []dataset.Example, p params.Training, maxEpochs int) (*SeqEpochTrainer, error) {
	b, err := newBase(n, set, p, maxEpochs)
	if err != nil {
		return nil, err
	}
	return &SeqEpochTrainer{base: b}, nil
}

func (t *SeqEpochTrainer) Next() (Progress, bool) {
	if !t.more() {
		return Progress{}, false
	}
	for _, ex := range t.set {
		UpdateState(t.net, ex, t.st, t.p, t.epoch)
		UpdateWeights(t.net, t.st)
	}
	return t.advance(math.NaN()), true
}

// Train runs the remaining epochs and returns the last progress.
func (t *SeqEpochTrainer) Train() Progress { return drive(t) }
