//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements Bristol-format boolean circuits.
package circuit

import (
	"fmt"
	"io"
)

// Operation specifies gate function.
type Operation byte

// Gate functions.
const (
	XOR Operation = iota
	XNOR
	AND
	OR
	INV
	EQW
)

// Stats holds statistics about circuit operations.
type Stats [EQW + 1]int

func (op Operation) String() string {
	switch op {
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case INV:
		return "INV"
	case EQW:
		return "EQW"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// Interactive tests if evaluating the operation on shares needs a
// multiplication round.
func (op Operation) Interactive() bool {
	return op == AND || op == OR
}

// IOArg describes circuit input or output argument.
type IOArg struct {
	Name string
	Size int
}

func (io IOArg) String() string {
	if len(io.Name) > 0 {
		return fmt.Sprintf("%s:u%d", io.Name, io.Size)
	}
	return fmt.Sprintf("u%d", io.Size)
}

// IO specifies circuit input and output arguments.
type IO []IOArg

// Size computes the size of the circuit input and output arguments in
// bits.
func (io IO) Size() int {
	var sum int
	for _, a := range io {
		sum += a.Size
	}
	return sum
}

func (io IO) String() string {
	var str = ""
	for i, a := range io {
		if i > 0 {
			str += ", "
		}
		str += a.String()
	}
	return str
}

// Circuit specifies a boolean circuit. The input wires are numbered
// from zero in argument order and the output wires are the last wires
// of the circuit.
type Circuit struct {
	NumGates int
	NumWires int
	Inputs   IO
	Outputs  IO
	Gates    []Gate
	Stats    Stats
}

func (c *Circuit) String() string {
	var stats string

	for k := XOR; k <= EQW; k++ {
		v := c.Stats[k]
		if v == 0 {
			continue
		}
		if len(stats) > 0 {
			stats += " "
		}
		stats += fmt.Sprintf("%s=%d", k, v)
	}
	return fmt.Sprintf("#gates=%d (%s) #w=%d", c.NumGates, stats, c.NumWires)
}

// NumInteractive returns the number of gates that need a
// multiplication round.
func (c *Circuit) NumInteractive() int {
	return c.Stats[AND] + c.Stats[OR]
}

// OutputWires returns the output wires of the circuit.
func (c *Circuit) OutputWires() []Wire {
	size := c.Outputs.Size()
	result := make([]Wire, size)
	for i := range result {
		result[i] = Wire(c.NumWires - size + i)
	}
	return result
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump(out io.Writer) {
	fmt.Fprintf(out, "circuit %s\n", c)
	for id, gate := range c.Gates {
		fmt.Fprintf(out, "%04d\t%s\n", id, gate)
	}
}

// Gate specifies a boolean gate.
type Gate struct {
	Input0 Wire
	Input1 Wire
	Output Wire
	Op     Operation
}

func (g Gate) String() string {
	return fmt.Sprintf("%v %v %v", g.Inputs(), g.Op, g.Output)
}

// Inputs returns gate input wires.
func (g Gate) Inputs() []Wire {
	switch g.Op {
	case XOR, XNOR, AND, OR:
		return []Wire{g.Input0, g.Input1}
	case INV, EQW:
		return []Wire{g.Input0}
	default:
		panic(fmt.Sprintf("unsupported gate type %s", g.Op))
	}
}

// Wire specifies a wire ID.
type Wire uint32

// ID returns the wire ID as integer.
func (w Wire) ID() int {
	return int(w)
}

func (w Wire) String() string {
	return fmt.Sprintf("w%d", w)
}
