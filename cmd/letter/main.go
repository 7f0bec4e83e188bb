package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/nnet/nnet"
)

func main() {
	data := flag.String("data", "letter-recognition.data", "UCI letter recognition CSV file")
	letter := flag.String("letter", "A", "letter to recognize")
	epochs := flag.Int("epochs", 500, "number of epochs")
	rate := flag.Float64("rate", 0.3, "learning rate")
	momentum := flag.Float64("momentum", 0.3, "momentum")
	hidden := flag.Int("hidden", 8, "hidden units")
	workers := flag.Int("workers", 0, "parallel workers (0 = logical cores)")
	seed := flag.Uint64("seed", 42, "weight initialization seed")
	model := flag.String("model", "", "load this network instead of training")
	checkpoint := flag.String("checkpoint", "", "save the network here whenever the training error improves")
	out := flag.String("out", "", "save the trained network (.gob or .json)")
	quiet := flag.Bool("q", false, "do not print failed predictions")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	rows, err := nnet.LoadLetters(*data, *letter)
	if err != nil {
		fatal(err)
	}
	training, err := trainingRows(rows)
	if err != nil && *model == "" {
		fatal(err)
	}
	slog.Info("loaded", "examples", len(rows), "training", len(training))

	var n *nnet.Network
	if *model != "" {
		if n, err = nnet.Load(*model); err != nil {
			fatal(err)
		}
	} else {
		n = trainNetwork(training, *hidden, *seed, *rate, *momentum, *epochs, *workers, *checkpoint)
	}

	failed := 0
	for i, ex := range rows {
		got := math.Round(n.Predict(ex.Input)[0])
		if got != math.Round(ex.Expected[0]) {
			failed++
			if !*quiet {
				fmt.Printf("%d | predicted = %v / expected = %v\n", i, got, ex.Expected[0])
			}
		}
	}
	fmt.Printf("failed = %d / total = %d\n", failed, len(rows))

	if *out != "" {
		if err := n.Save(*out); err != nil {
			fatal(err)
		}
		slog.Info("saved", "file", *out)
	}
}

// trainingRows returns the first two thirds of rows, the part the network
// is trained on. All rows are used for evaluation.
func trainingRows(rows []nnet.Example) ([]nnet.Example, error) {
	split := 2 * len(rows) / 3
	if split == 0 {
		return nil, errors.Errorf("need at least 2 examples to train, got %d", len(rows))
	}
	return rows[:split], nil
}

func trainNetwork(set []nnet.Example, hidden int, seed uint64, rate, momentum float64, epochs, workers int, checkpoint string) *nnet.Network {
	n, err := nnet.New(len(set[0].Input), hidden, 1, nnet.TanhParams(rand.New(rand.NewPCG(seed, seed))))
	if err != nil {
		fatal(err)
	}
	p := nnet.DefaultTraining(rate, momentum)
	t, err := nnet.NewParallelBatchTrainer(n, set, p, epochs, nnet.WithWorkers(workers))
	if err != nil {
		fatal(err)
	}
	slog.Info("training", "cpu", cpuid.CPU.BrandName, "workers", t.Workers(), "epochs", epochs)

	var callbacks []nnet.Callback
	if checkpoint != "" {
		callbacks = append(callbacks, &measured{set: set, p: p, ModelCheckpoint: nnet.NewModelCheckpoint(checkpoint)})
	}

	start := time.Now()
	nnet.Run(t, callbacks...)
	slog.Info("trained", "took", time.Since(start), "mse", nnet.MeanError(n, set, p.Error))
	return n
}

// measured feeds the training set error to a checkpoint, since the
// parallel trainer does not measure it.
type measured struct {
	*nnet.ModelCheckpoint
	set []nnet.Example
	p   nnet.TrainingParams
}

func (m *measured) OnEpochEnd(p nnet.Progress, n *nnet.Network) {
	p.Error = nnet.MeanError(n, m.set, m.p.Error)
	m.ModelCheckpoint.OnEpochEnd(p, n)
}

func fatal(err error) {
	slog.Error("letter", "error", err)
	os.Exit(1)
}
