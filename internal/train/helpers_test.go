package train

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/nnet/internal/activations"
	"github.com/FlavioCFOliveira/nnet/internal/dataset"
	"github.com/FlavioCFOliveira/nnet/internal/net"
	"github.com/FlavioCFOliveira/nnet/internal/params"
)

type constWeights float64

func (c constWeights) Weight(int, int) float64 { return float64(c) }

func xorSet() []dataset.Example {
	return []dataset.Example{
		{Input: []float64{0, 0}, Expected: []float64{0}},
		{Input: []float64{0, 1}, Expected: []float64{1}},
		{Input: []float64{1, 0}, Expected: []float64{1}},
		{Input: []float64{1, 1}, Expected: []float64{0}},
	}
}

func orSet() []dataset.Example {
	return []dataset.Example{
		{Input: []float64{0, 0}, Expected: []float64{0}},
		{Input: []float64{0, 1}, Expected: []float64{1}},
		{Input: []float64{1, 0}, Expected: []float64{1}},
		{Input: []float64{1, 1}, Expected: []float64{1}},
	}
}

func logisticNet(t *testing.T, in, hidden, out int, seed uint64) *net.Network {
	t.Helper()
	n, err := net.New(in, hidden, out, params.Logistic(rand.New(rand.NewPCG(seed, seed+1))))
	require.NoError(t, err)
	return n
}

func linearNet(t *testing.T) *net.Network {
	t.Helper()
	n, err := net.New(1, 1, 1, params.Network{
		Activation: activations.Linear{},
		Weights:    constWeights(0.5),
		Bias:       params.ConstantBias(1),
	})
	require.NoError(t, err)
	return n
}

func randomState(r *rand.Rand, d net.Dims) *State {
	s := NewState(d)
	for _, m := range []*mat.Dense{s.dinput, s.doutput} {
		rows, cols := m.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				m.Set(i, j, r.NormFloat64())
			}
		}
	}
	for i := range s.ehidden {
		s.ehidden[i] = r.NormFloat64()
	}
	for i := range s.eoutput {
		s.eoutput[i] = r.NormFloat64()
	}
	return s
}

func weightsEqual(a, b *net.Network) bool {
	aih, aho := a.Weights()
	bih, bho := b.Weights()
	return mat.Equal(aih, bih) && mat.Equal(aho, bho)
}
