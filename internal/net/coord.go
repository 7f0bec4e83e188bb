package net

import "fmt"

// LayerKind selects one of the three node layers.
type LayerKind int

const (
	InputLayer LayerKind = iota
	HiddenLayer
	OutputLayer
)

func (k LayerKind) String() string {
	switch k {
	case InputLayer:
		return "input"
	case HiddenLayer:
		return "hidden"
	case OutputLayer:
		return "output"
	default:
		return fmt.Sprintf("LayerKind(%d)", int(k))
	}
}

type coordKind int

const (
	nodeCoord coordKind = iota
	wihCoord
	whoCoord
)

// Coord addresses a node or a weight of a network.
type Coord struct {
	kind  coordKind
	layer LayerKind
	i, j  int
}

// Input addresses input node i. The bias node is at index In.
func Input(i int) Coord { return Coord{kind: nodeCoord, layer: InputLayer, i: i} }

// Hidden addresses hidden node i. The bias node is at index Hidden.
func Hidden(i int) Coord { return Coord{kind: nodeCoord, layer: HiddenLayer, i: i} }

// Output addresses output node i.
func Output(i int) Coord { return Coord{kind: nodeCoord, layer: OutputLayer, i: i} }

// WeightInputHidden addresses the weight from input node i to hidden node j.
func WeightInputHidden(i, j int) Coord { return Coord{kind: wihCoord, i: i, j: j} }

// WeightHiddenOutput addresses the weight from hidden node i to output node j.
func WeightHiddenOutput(i, j int) Coord { return Coord{kind: whoCoord, i: i, j: j} }

func (c Coord) String() string {
	switch c.kind {
	case wihCoord:
		return fmt.Sprintf("w_ih[%d][%d]", c.i, c.j)
	case whoCoord:
		return fmt.Sprintf("w_ho[%d][%d]", c.i, c.j)
	default:
		return fmt.Sprintf("%s[%d]", c.layer, c.i)
	}
}

// Layer returns the nodes of the given layer, bias node included.
// The slice is the network's own storage and must be treated as read-only.
func (n *Network) Layer(k LayerKind) []float64 {
	switch k {
	case InputLayer:
		return n.input
	case HiddenLayer:
		return n.hidden
	case OutputLayer:
		return n.output
	default:
		panic(fmt.Sprintf("net: unknown layer %v", k))
	}
}

// Node returns the value at c. It panics if c is out of range.
func (n *Network) Node(c Coord) float64 {
	switch c.kind {
	case wihCoord:
		return n.wih.At(c.i, c.j)
	case whoCoord:
		return n.who.At(c.i, c.j)
	default:
		return n.Layer(c.layer)[c.i]
	}
}

// SetNode sets the value at c. It panics if c is out of range or
// addresses a bias node.
func (n *Network) SetNode(c Coord, v float64) {
	switch c.kind {
	case wihCoord:
		n.wih.Set(c.i, c.j, v)
	case whoCoord:
		n.who.Set(c.i, c.j, v)
	default:
		l := n.Layer(c.layer)
		if c.layer != OutputLayer && c.i == len(l)-1 {
			panic(fmt.Sprintf("net: %v is a bias node", c))
		}
		l[c.i] = v
	}
}
