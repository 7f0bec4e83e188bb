package net

import (
	"encoding/gob"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/nnet/internal/activations"
)

// snapshot is the serialized form of a Network. Weights are stored row-major.
type snapshot struct {
	Activation string
	// Alpha is the negative slope of a LeakyReLU activation.
	Alpha      float64
	In         int
	Hidden     int
	Out        int
	InputBias  float64
	HiddenBias float64
	WIH        []float64
	WHO        []float64
}

func (n *Network) snapshot() (snapshot, error) {
	name := activations.Name(n.act)
	if name == "" {
		return snapshot{}, errors.Errorf("net: cannot serialize activation %T", n.act)
	}
	var alpha float64
	if l, ok := n.act.(*activations.LeakyReLU); ok {
		alpha = l.Alpha
	}
	d := n.Dims()
	return snapshot{
		Activation: name,
		Alpha:      alpha,
		In:         d.In,
		Hidden:     d.Hidden,
		Out:        d.Out,
		InputBias:  n.input[d.In],
		HiddenBias: n.hidden[d.Hidden],
		WIH:        rowMajor(n.wih),
		WHO:        rowMajor(n.who),
	}, nil
}

func rowMajor(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, m.RawRowView(i)...)
	}
	return out
}

func fromSnapshot(s snapshot) (*Network, error) {
	if s.In <= 0 || s.Hidden <= 0 || s.Out <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "snapshot has %dx%dx%d", s.In, s.Hidden, s.Out)
	}
	act, ok := activations.ByName(s.Activation)
	if !ok {
		return nil, errors.Errorf("net: unknown activation %q", s.Activation)
	}
	if _, leaky := act.(*activations.LeakyReLU); leaky {
		act = activations.NewLeakyReLU(s.Alpha)
	}
	if len(s.WIH) != (s.In+1)*s.Hidden || len(s.WHO) != (s.Hidden+1)*s.Out {
		return nil, errors.Errorf("net: snapshot weights do not match %dx%dx%d", s.In, s.Hidden, s.Out)
	}

	n := alloc(Dims{s.In, s.Hidden, s.Out}, act)
	n.wih.Copy(mat.NewDense(s.In+1, s.Hidden, s.WIH))
	n.who.Copy(mat.NewDense(s.Hidden+1, s.Out, s.WHO))
	n.input[s.In] = s.InputBias
	n.hidden[s.Hidden] = s.HiddenBias
	return n, nil
}

// Encode writes the network to w using gob encoding.
func (n *Network) Encode(w io.Writer) error {
	s, err := n.snapshot()
	if err != nil {
		return err
	}
	return errors.Wrap(gob.NewEncoder(w).Encode(s), "net: encode network")
}

// Decode reads a network written by Encode.
func Decode(r io.Reader) (*Network, error) {
	var s snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "net: decode network")
	}
	return fromSnapshot(s)
}

// MarshalJSON implements json.Marshaler.
func (n *Network) MarshalJSON() ([]byte, error) {
	s, err := n.snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON implements json.Unmarshaler. The receiver is replaced
// with the decoded network.
func (n *Network) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "net: unmarshal network")
	}
	dec, err := fromSnapshot(s)
	if err != nil {
		return err
	}
	*n = *dec
	return nil
}

// Save writes the network to filename. Files ending in ".json" are written
// as JSON, anything else with gob.
func (n *Network) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "net: create snapshot")
	}
	defer file.Close()

	if filepath.Ext(filename) == ".json" {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		if err := enc.Encode(n); err != nil {
			return errors.Wrapf(err, "net: write %s", filename)
		}
	} else if err := n.Encode(file); err != nil {
		return err
	}
	return errors.Wrapf(file.Close(), "net: close %s", filename)
}

// Load reads a network written by Save.
func Load(filename string) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "net: open snapshot")
	}
	defer file.Close()

	if filepath.Ext(filename) == ".json" {
		n := new(Network)
		if err := json.NewDecoder(file).Decode(n); err != nil {
			return nil, errors.Wrapf(err, "net: read %s", filename)
		}
		return n, nil
	}
	return Decode(file)
}
