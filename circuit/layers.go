//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

// Layer holds the gates of one AND depth. The interactive gates of a
// layer are independent of each other and can be evaluated with one
// batched multiplication. The local gates of the layer must be
// evaluated after the interactive gates, in the order they appear.
type Layer struct {
	Interactive []Gate
	Local       []Gate
}

// Layers groups the circuit gates by their AND depth. The depth of an
// interactive gate is one more than the maximum depth of its inputs
// and the depth of a local gate is the maximum depth of its inputs.
// Input wires have depth zero.
func (c *Circuit) Layers() []Layer {
	depths := make([]int, c.NumWires)
	var maxDepth int

	for _, g := range c.Gates {
		var d int
		for _, w := range g.Inputs() {
			if depths[w] > d {
				d = depths[w]
			}
		}
		if g.Op.Interactive() {
			d++
		}
		depths[g.Output] = d
		if d > maxDepth {
			maxDepth = d
		}
	}

	layers := make([]Layer, maxDepth+1)
	for _, g := range c.Gates {
		d := depths[g.Output]
		if g.Op.Interactive() {
			layers[d].Interactive = append(layers[d].Interactive, g)
		} else {
			layers[d].Local = append(layers[d].Local, g)
		}
	}
	return layers
}

// Depth returns the AND depth of the circuit.
func (c *Circuit) Depth() int {
	return len(c.Layers()) - 1
}
