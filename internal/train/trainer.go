package train

import (
	"math"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/loss"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// Unbounded as maxEpochs lets a trainer run until its own stopping
// condition fires.
const Unbounded = math.MaxInt

var (
	ErrNilNetwork       = errors.New("train: network is nil")
	ErrEmptyTrainingSet = errors.New("train: training set is empty")
	ErrInvalidTarget    = errors.New("train: target error must be positive")
)

// Progress reports a finished epoch.
type Progress struct {
	// Epoch is the number of epochs completed so far.
	Epoch int
	// Error is the mean error of the epoch, or NaN when the trainer
	// does not measure it.
	Error float64
}

// Measured reports whether p carries an epoch error.
func (p Progress) Measured() bool {
	return !math.IsNaN(p.Error)
}

// Trainer trains a network one epoch at a time.
type Trainer interface {
	// Next runs one epoch. It returns false, without training, once the
	// trainer has terminated.
	Next() (Progress, bool)

	// Network returns the network being trained.
	Network() *net.Network
}

// base holds what every trainer shares.
type base struct {
	net       *net.Network
	set       []dataset.Example
	p         params.Training
	st        *State
	epoch     int
	maxEpochs int
	done      bool
}

func newBase(n *net.Network, set []dataset.Example, p params.Training, maxEpochs int) (base, error) {
	if n == nil {
		return base{}, ErrNilNetwork
	}
	if len(set) == 0 {
		return base{}, ErrEmptyTrainingSet
	}
	d := n.Dims()
	if err := dataset.Check(set, d.In, d.Out); err != nil {
		return base{}, err
	}
	if maxEpochs < 0 {
		return base{}, errors.Errorf("train: negative epoch bound %d", maxEpochs)
	}
	if err := p.Validate(); err != nil {
		return base{}, err
	}
	return base{
		net:       n,
		set:       set,
		p:         p,
		st:        NewState(d),
		maxEpochs: maxEpochs,
	}, nil
}

func (b *base) Network() *net.Network { return b.net }

// State returns the trainer's backward-pass state.
func (b *base) State() *State { return b.st }

func (b *base) more() bool {
	return !b.done && b.epoch < b.maxEpochs
}

func (b *base) advance(err float64) Progress {
	b.epoch++
	return Progress{Epoch: b.epoch, Error: err}
}

func drive(t Trainer) Progress {
	last := Progress{Error: math.NaN()}
	for p := range Epochs(t) {
		last = p
	}
	return last
}

// MeanError predicts every example of set with n and returns the mean of
// e over the set.
func MeanError(n *net.Network, set []dataset.Example, e loss.ErrorFunction) float64 {
	if len(set) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, ex := range set {
		sum += e.Error(n.Predict(ex.Input), ex.Expected)
	}
	return sum / float64(len(set))
}
