package train

import (
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

// ErrPoisoned is returned when the canonical network is acquired after a
// panic left it in an unknown state.
var ErrPoisoned = errors.New("train: canonical network is poisoned")

// sharedNetwork guards the canonical network used by the parallel trainer.
// A panic while it is held poisons it for good.
type sharedNetwork struct {
	mu       sync.Mutex
	n        *net.Network
	poisoned bool
}

func (s *sharedNetwork) with(f func(n *net.Network)) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned {
		return ErrPoisoned
	}
	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			err = errors.Wrapf(ErrPoisoned, "panic: %v", r)
		}
	}()
	f(s.n)
	return nil
}

// DefaultWorkers returns the number of logical cores, as reported by cpuid
// or, failing that, by the runtime.
func DefaultWorkers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ParallelOption configures a ParallelBatchTrainer.
type ParallelOption func(*ParallelBatchTrainer)

// WithWorkers sets the number of shards trained concurrently.
// Values below 1 are ignored.
func WithWorkers(n int) ParallelOption {
	return func(t *ParallelBatchTrainer) {
		if n > 0 {
			t.workers = n
		}
	}
}

// WithLogger sets the logger receiving worker warnings.
func WithLogger(l *slog.Logger) ParallelOption {
	return func(t *ParallelBatchTrainer) {
		if l != nil {
			t.log = l
		}
	}
}

// ParallelBatchTrainer is a batch trainer that splits the set into
// contiguous shards and runs the backward passes of each shard in its own
// goroutine. The shard states are averaged and applied once per epoch.
type ParallelBatchTrainer struct {
	base
	shared  *sharedNetwork
	workers int
	shards  [][]dataset.Example
	log     *slog.Logger
}

type report struct {
	shard int
	state *State
}

// NewParallelBatchTrainer creates a parallel batch trainer running maxEpochs
// epochs. Training happens on a private copy of n; the weights are copied
// back into n after every epoch.
func NewParallelBatchTrainer(n *net.Network, set []dataset.Example, p params.Training, maxEpochs int, opts ...ParallelOption) (*ParallelBatchTrainer, error) {
	b, err := newBase(n, set, p, maxEpochs)
	if err != nil {
		return nil, err
	}
	t := &ParallelBatchTrainer{
		base:    b,
		shared:  &sharedNetwork{n: n.Clone()},
		workers: DefaultWorkers(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.shards = shard(set, min(t.workers, len(set)))
	return t, nil
}

// shard splits set into k contiguous parts. The first len(set)%k parts
// get one extra example.
func shard(set []dataset.Example, k int) [][]dataset.Example {
	size, rem := len(set)/k, len(set)%k
	shards := make([][]dataset.Example, k)
	start := 0
	for i := range shards {
		end := start + size
		if i < rem {
			end++
		}
		shards[i] = set[start:end]
		start = end
	}
	return shards
}

// Workers returns the number of shards trained per epoch.
func (t *ParallelBatchTrainer) Workers() int { return len(t.shards) }

func (t *ParallelBatchTrainer) Next() (Progress, bool) {
	if !t.more() {
		return Progress{}, false
	}

	reports := make(chan report, len(t.shards))
	for i, s := range t.shards {
		go t.work(i, s, t.st.Clone(), t.epoch, reports)
	}

	states := make([]*State, len(t.shards))
	for range t.shards {
		r := <-reports
		states[r.shard] = r.state
	}
	states[0].Combine(states[1:]...)
	t.st = states[0]

	err := t.shared.with(func(n *net.Network) {
		UpdateWeights(n, t.st)
		t.net.CopyWeights(n)
	})
	if err != nil {
		t.log.Warn("skipping weight update", "epoch", t.epoch, "error", err)
	}
	return t.advance(math.NaN()), true
}

// work accumulates the shard into st. A poisoned network never recovers, so
// the rest of the shard is skipped with a single warning.
func (t *ParallelBatchTrainer) work(shard int, set []dataset.Example, st *State, epoch int, reports chan<- report) {
	for i, ex := range set {
		err := t.shared.with(func(n *net.Network) {
			UpdateState(n, ex, st, t.p, epoch)
		})
		if err != nil {
			t.log.Warn("skipping shard", "shard", shard, "example", i, "skipped", len(set)-i, "error", err)
			break
		}
	}
	reports <- report{shard: shard, state: st}
}

// Train runs the remaining epochs and returns the last progress.
func (t *ParallelBatchTrainer) Train() Progress { return drive(t) }
