package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/loss"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
	"github.com/FlavioCFOliveira/nnet/internal/train"
)

func main() {
	epochs := flag.Int("epochs", 10000, "maximum number of epochs")
	rate := flag.Float64("rate", 0.5, "learning rate")
	momentum := flag.Float64("momentum", 0.3, "momentum")
	hidden := flag.Int("hidden", 3, "hidden units")
	kind := flag.String("trainer", "seq", "trainer: seq, error, batch or parallel")
	target := flag.Float64("target", 0.01, "target mean error for the error trainer")
	workers := flag.Int("workers", 0, "parallel trainer workers (0 = logical cores)")
	seed := flag.Uint64("seed", 42, "weight initialization seed")
	interval := flag.Int("log-every", 1000, "log every n epochs")
	csvLog := flag.String("log-csv", "", "write per-epoch progress to this CSV file")
	patience := flag.Int("patience", 0, "stop after this many epochs without improvement (error trainer)")
	out := flag.String("out", "", "save the trained network (.gob or .json)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("cpu", "brand", cpuid.CPU.BrandName, "logical_cores", cpuid.CPU.LogicalCores)

	set := []dataset.Example{
		{Input: []float64{0, 0}, Expected: []float64{0}},
		{Input: []float64{0, 1}, Expected: []float64{1}},
		{Input: []float64{1, 0}, Expected: []float64{1}},
		{Input: []float64{1, 1}, Expected: []float64{0}},
	}

	n, err := net.New(2, *hidden, 1, params.Logistic(rand.New(rand.NewPCG(*seed, *seed))))
	if err != nil {
		fatal(err)
	}
	p := params.DefaultTraining(*rate, *momentum)

	var t train.Trainer
	switch *kind {
	case "seq":
		t, err = train.NewSeqEpochTrainer(n, set, p, *epochs)
	case "error":
		t, err = train.NewErrorAverageTrainer(n, set, p, *target, *epochs)
	case "batch":
		t, err = train.NewBatchEpochTrainer(n, set, p, *epochs)
	case "parallel":
		t, err = train.NewParallelBatchTrainer(n, set, p, *epochs, train.WithWorkers(*workers))
	default:
		err = errors.Errorf("unknown trainer %q", *kind)
	}
	if err != nil {
		fatal(err)
	}

	callbacks := []train.Callback{train.Logger{Interval: *interval}}
	if *csvLog != "" {
		callbacks = append(callbacks, train.NewCSVLogger(*csvLog, false))
	}
	if *patience > 0 {
		callbacks = append(callbacks, train.NewEarlyStopping(*patience, 0))
	}
	last := train.Run(t, callbacks...)
	slog.Info("finished", "epochs", last.Epoch, "mse", train.MeanError(n, set, loss.MSE{}))

	for _, ex := range set {
		fmt.Printf("%v -> %.4f (expected %v)\n", ex.Input, n.Predict(ex.Input)[0], ex.Expected[0])
	}

	if *out != "" {
		if err := n.Save(*out); err != nil {
			fatal(err)
		}
		slog.Info("saved", "file", *out)
	}
}

func fatal(err error) {
	slog.Error("xor", "error", err)
	os.Exit(1)
}
