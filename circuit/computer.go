//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"math/big"

	"github.com/cockroachdb/errors"
)

// Compute evaluates the circuit in the clear. The arguments are the
// circuit input values in argument order.
func (c *Circuit) Compute(inputs []*big.Int) ([]*big.Int, error) {
	if len(inputs) != len(c.Inputs) {
		return nil, errors.Newf("invalid inputs: got %d, expected %d",
			len(inputs), len(c.Inputs))
	}

	wires := make([]bool, c.NumWires)

	var w int
	for idx, arg := range c.Inputs {
		v := inputs[idx]
		if v.Sign() < 0 || v.BitLen() > arg.Size {
			return nil, errors.Newf("input %d does not fit in %d bits",
				idx, arg.Size)
		}
		for bit := 0; bit < arg.Size; bit++ {
			wires[w] = v.Bit(bit) != 0
			w++
		}
	}

	for _, g := range c.Gates {
		out, err := g.Op.Eval(wires[g.Input0], wires[g.Input1])
		if err != nil {
			return nil, err
		}
		wires[g.Output] = out
	}

	outputs := c.OutputWires()
	result := make([]*big.Int, 0, len(c.Outputs))
	for _, arg := range c.Outputs {
		v := new(big.Int)
		for bit := 0; bit < arg.Size; bit++ {
			if wires[outputs[0]] {
				v.SetBit(v, bit, 1)
			}
			outputs = outputs[1:]
		}
		result = append(result, v)
	}
	return result, nil
}

// Eval evaluates the operation on clear bits. The unary operations
// ignore b.
func (op Operation) Eval(a, b bool) (bool, error) {
	switch op {
	case XOR:
		return a != b, nil
	case XNOR:
		return a == b, nil
	case AND:
		return a && b, nil
	case OR:
		return a || b, nil
	case INV:
		return !a, nil
	case EQW:
		return a, nil
	default:
		return false, errors.Newf("invalid gate %s", op)
	}
}
