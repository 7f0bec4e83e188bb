// Package nnet is the public entry point to the network and its trainers.
package nnet

import (
	"math/rand/v2"

	"github.com/FlavioCFOliveira/nnet/internal/activations"
	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/loss"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/opt"
	"github.com/FlavioCFOliveira/nnet/internal/params"
	"github.com/FlavioCFOliveira/nnet/internal/train"
)

// Re-export common types and functions for easier access
type (
	Network        = net.Network
	Dims           = net.Dims
	Example        = dataset.Example
	Activation     = activations.Activation
	NetworkParams  = params.Network
	TrainingParams = params.Training
	Trainer        = train.Trainer
	Progress       = train.Progress
	Callback       = train.Callback
	ErrorFunction  = loss.ErrorFunction
	Schedule       = opt.Schedule
)

const Unbounded = train.Unbounded

var (
	ErrInvalidTarget     = train.ErrInvalidTarget
	ErrEmptyTrainingSet  = train.ErrEmptyTrainingSet
	ErrDimensionMismatch = dataset.ErrDimensionMismatch
	ErrInvalidDimensions = net.ErrInvalidDimensions
)

// Activations
var (
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
	ReLU    = activations.ReLU{}
	Linear  = activations.Linear{}
)

func LeakyReLU(alpha float64) Activation {
	return activations.NewLeakyReLU(alpha)
}

// Error functions
var (
	MSE          = loss.MSE{}
	CrossEntropy = loss.CrossEntropy{}
)

// Network parameter presets. A nil r uses the global random source.
func Logistic(r *rand.Rand) NetworkParams   { return params.Logistic(r) }
func TanhParams(r *rand.Rand) NetworkParams { return params.Tanh(r) }

// DefaultTraining returns a constant learning rate with momentum and MSE.
func DefaultTraining(rate, momentum float64) TrainingParams {
	return params.DefaultTraining(rate, momentum)
}

// Learning rate schedules
func StepDecay(initial float64, stepSize int, gamma float64) Schedule {
	return opt.NewStepDecay(initial, stepSize, gamma)
}

func ExponentialDecay(initial, gamma float64) Schedule {
	return opt.NewExponentialDecay(initial, gamma)
}

// New creates a network with in inputs, hidden hidden units and out outputs.
func New(in, hidden, out int, p NetworkParams) (*Network, error) {
	return net.New(in, hidden, out, p)
}

// Load reads a network saved with (*Network).Save.
func Load(filename string) (*Network, error) {
	return net.Load(filename)
}

// Trainers
func NewSeqEpochTrainer(n *Network, set []Example, p TrainingParams, maxEpochs int) (*train.SeqEpochTrainer, error) {
	return train.NewSeqEpochTrainer(n, set, p, maxEpochs)
}

func NewErrorAverageTrainer(n *Network, set []Example, p TrainingParams, target float64, maxEpochs int) (*train.ErrorAverageTrainer, error) {
	return train.NewErrorAverageTrainer(n, set, p, target, maxEpochs)
}

func NewBatchEpochTrainer(n *Network, set []Example, p TrainingParams, maxEpochs int) (*train.BatchEpochTrainer, error) {
	return train.NewBatchEpochTrainer(n, set, p, maxEpochs)
}

func NewParallelBatchTrainer(n *Network, set []Example, p TrainingParams, maxEpochs int, opts ...train.ParallelOption) (*train.ParallelBatchTrainer, error) {
	return train.NewParallelBatchTrainer(n, set, p, maxEpochs, opts...)
}

func WithWorkers(n int) train.ParallelOption { return train.WithWorkers(n) }

// Callbacks
type (
	Logger          = train.Logger
	EarlyStopping   = train.EarlyStopping
	ModelCheckpoint = train.ModelCheckpoint
	CSVLogger       = train.CSVLogger
)

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return train.NewEarlyStopping(patience, threshold)
}

func NewModelCheckpoint(filename string) *ModelCheckpoint {
	return train.NewModelCheckpoint(filename)
}

func NewCSVLogger(filename string, append bool) *CSVLogger {
	return train.NewCSVLogger(filename, append)
}

// Run drives t to completion, notifying callbacks after every epoch.
func Run(t Trainer, callbacks ...Callback) Progress {
	return train.Run(t, callbacks...)
}

// MeanError returns the mean of e over the predictions of n for set.
func MeanError(n *Network, set []Example, e ErrorFunction) float64 {
	return train.MeanError(n, set, e)
}

// Data loading
func LoadCSV(filename string, labelCols []int, hasHeader bool) ([]Example, error) {
	return dataset.LoadCSV(filename, labelCols, hasHeader)
}

func LoadLetters(filename, target string) ([]Example, error) {
	return dataset.LoadLetters(filename, target)
}
