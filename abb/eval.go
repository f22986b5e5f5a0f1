//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/circuit"
	"github.com/markkurossi/abb/share"
)

// EvalCircuit evaluates the circuit with the input shares. The inputs
// are given in the order of the circuit inputs. The function returns
// the output shares in the order of the circuit outputs.
func (s *Session) EvalCircuit(circ *circuit.Circuit,
	inputs []share.BinaryString) ([]share.BinaryString, error) {

	result, err := s.BatchEvalCircuit(circ, [][]share.BinaryString{inputs})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

// BatchEvalCircuit evaluates the circuit for all input sets. The
// interactive gates of each AND depth are evaluated for all instances
// in one round.
func (s *Session) BatchEvalCircuit(circ *circuit.Circuit,
	inputs [][]share.BinaryString) ([][]share.BinaryString, error) {

	wires := make([][]share.Binary, len(inputs))
	for i, in := range inputs {
		if len(in) != len(circ.Inputs) {
			return nil, errors.Newf("instance %d: got %d inputs, expected %d",
				i, len(in), len(circ.Inputs))
		}
		wires[i] = make([]share.Binary, circ.NumWires)
		var w int
		for j, arg := range circ.Inputs {
			if in[j].Length != arg.Size {
				return nil, errors.Newf("instance %d: input %d: got %d bits, expected %d",
					i, j, in[j].Length, arg.Size)
			}
			for bit := 0; bit < arg.Size; bit++ {
				wires[i][w] = in[j].Get(bit)
				w++
			}
		}
	}

	for depth, layer := range circ.Layers() {
		if len(layer.Interactive) > 0 {
			s.Debugf("%s: layer %d: %d interactive gates\n",
				s.IDString(), depth, len(layer.Interactive)*len(wires))

			var as, bs []share.Binary
			for _, w := range wires {
				for _, g := range layer.Interactive {
					as = append(as, w[g.Input0])
					bs = append(bs, w[g.Input1])
				}
			}
			products, err := s.ANDBits(as, bs)
			if err != nil {
				return nil, err
			}
			var idx int
			for _, w := range wires {
				for _, g := range layer.Interactive {
					v := products[idx]
					idx++
					if g.Op == circuit.OR {
						v = v.XOR(w[g.Input0]).XOR(w[g.Input1])
					}
					w[g.Output] = v
				}
			}
		}
		for _, w := range wires {
			for _, g := range layer.Local {
				switch g.Op {
				case circuit.XOR:
					w[g.Output] = w[g.Input0].XOR(w[g.Input1])
				case circuit.XNOR:
					w[g.Output] = w[g.Input0].XOR(w[g.Input1]).Not()
				case circuit.INV:
					w[g.Output] = w[g.Input0].Not()
				case circuit.EQW:
					w[g.Output] = w[g.Input0]
				default:
					panic(fmt.Sprintf("invalid local gate %s", g.Op))
				}
			}
		}
	}

	outputWires := circ.OutputWires()
	result := make([][]share.BinaryString, len(wires))
	for i, w := range wires {
		var pos int
		for _, arg := range circ.Outputs {
			var out share.BinaryString
			for bit := 0; bit < arg.Size; bit++ {
				out.Push(w[outputWires[pos]])
				pos++
			}
			result[i] = append(result[i], out)
		}
	}
	return result, nil
}
