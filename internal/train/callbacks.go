package train

import (
	"log/slog"
	"math"

	"github.com/FlavioCFOliveira/nnet/internal/net"
)

// Callback observes a training run driven by Run.
type Callback interface {
	OnTrainBegin(n *net.Network)
	OnEpochEnd(p Progress, n *net.Network)
	OnTrainEnd(n *net.Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (BaseCallback) OnTrainBegin(n *net.Network)           {}
func (BaseCallback) OnEpochEnd(p Progress, n *net.Network) {}
func (BaseCallback) OnTrainEnd(n *net.Network)             {}

// EarlyStopping stops a run when the measured epoch error has not improved
// by more than Threshold for Patience epochs. Epochs without a measured
// error are ignored.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64

	best    float64
	bad     int
	stopped bool
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		best:      math.Inf(1),
	}
}

func (c *EarlyStopping) OnEpochEnd(p Progress, n *net.Network) {
	if !p.Measured() {
		return
	}
	if p.Error < c.best-c.Threshold {
		c.best = p.Error
		c.bad = 0
	} else {
		c.bad++
	}

	if c.bad >= c.Patience {
		slog.Info("early stopping", "epoch", p.Epoch, "error", p.Error, "patience", c.Patience)
		c.stopped = true
	}
}

func (c *EarlyStopping) ShouldStop() bool { return c.stopped }

// ModelCheckpoint saves the network whenever the measured epoch error
// is the best so far.
type ModelCheckpoint struct {
	BaseCallback
	Filename string

	best float64
}

func NewModelCheckpoint(filename string) *ModelCheckpoint {
	return &ModelCheckpoint{
		Filename: filename,
		best:     math.Inf(1),
	}
}

func (c *ModelCheckpoint) OnEpochEnd(p Progress, n *net.Network) {
	if !p.Measured() || p.Error >= c.best {
		return
	}
	c.best = p.Error
	if err := n.Save(c.Filename); err != nil {
		slog.Error("saving checkpoint", "file", c.Filename, "error", err)
		return
	}
	slog.Debug("checkpoint saved", "file", c.Filename, "epoch", p.Epoch, "error", p.Error)
}

// Logger logs every Interval-th epoch.
type Logger struct {
	BaseCallback
	Interval int
	// Log defaults to slog.Default().
	Log *slog.Logger
}

func (c Logger) OnEpochEnd(p Progress, n *net.Network) {
	if c.Interval <= 0 || p.Epoch%c.Interval != 0 {
		return
	}
	l := c.Log
	if l == nil {
		l = slog.Default()
	}
	if p.Measured() {
		l.Info("epoch", "epoch", p.Epoch, "error", p.Error)
	} else {
		l.Info("epoch", "epoch", p.Epoch)
	}
}
