//
// parser.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var reParts = regexp.MustCompilePOSIX("[[:space:]]+")

// ParseBristol parses a circuit in the Bristol Fashion format:
//
//	numGates numWires
//	numInputs inputSize...
//	numOutputs outputSize...
//
//	numIn numOut in... out OP
func ParseBristol(in io.Reader) (*Circuit, error) {
	r := bufio.NewReader(in)

	line, err := readLine(r)
	if err != nil {
		return nil, errors.Wrap(err, "circuit header")
	}
	if len(line) != 2 {
		return nil, errors.Newf("invalid 1st line: %v", line)
	}
	numGates, err := atoi(line[0])
	if err != nil {
		return nil, err
	}
	numWires, err := atoi(line[1])
	if err != nil {
		return nil, err
	}

	inputs, err := readIO(r, "input")
	if err != nil {
		return nil, err
	}
	outputs, err := readIO(r, "output")
	if err != nil {
		return nil, err
	}
	if inputs.Size()+outputs.Size() > numWires {
		return nil, errors.Newf("%d wires can't hold %d inputs and %d outputs",
			numWires, inputs.Size(), outputs.Size())
	}

	circuit := &Circuit{
		NumGates: numGates,
		NumWires: numWires,
		Inputs:   inputs,
		Outputs:  outputs,
		Gates:    make([]Gate, 0, numGates),
	}

	assigned := make([]bool, numWires)
	for i := 0; i < inputs.Size(); i++ {
		assigned[i] = true
	}

	for gate := 0; gate < numGates; gate++ {
		line, err = readLine(r)
		if err != nil {
			if err == io.EOF {
				return nil, errors.Newf("got %d gates, expected %d",
					gate, numGates)
			}
			return nil, err
		}
		g, err := parseGate(line)
		if err != nil {
			return nil, errors.Wrapf(err, "gate %d", gate)
		}
		for _, w := range g.Inputs() {
			if w.ID() >= numWires || !assigned[w] {
				return nil, errors.Newf("gate %d: input %v not assigned",
					gate, w)
			}
		}
		if g.Output.ID() >= numWires {
			return nil, errors.Newf("gate %d: invalid output %v", gate, g.Output)
		}
		if assigned[g.Output] {
			return nil, errors.Newf("gate %d: output %v already assigned",
				gate, g.Output)
		}
		assigned[g.Output] = true

		circuit.Gates = append(circuit.Gates, g)
		circuit.Stats[g.Op]++
	}

	for _, w := range circuit.OutputWires() {
		if !assigned[w] {
			return nil, errors.Newf("output %v not assigned", w)
		}
	}

	return circuit, nil
}

func parseGate(line []string) (Gate, error) {
	var g Gate

	if len(line) < 3 {
		return g, errors.Newf("invalid gate: %v", line)
	}
	n1, err := atoi(line[0])
	if err != nil {
		return g, err
	}
	n2, err := atoi(line[1])
	if err != nil {
		return g, err
	}
	if 2+n1+n2+1 != len(line) || n2 != 1 {
		return g, errors.Newf("invalid gate: %v", line)
	}

	var wires []Wire
	for i := 0; i < n1+n2; i++ {
		v, err := atoi(line[2+i])
		if err != nil {
			return g, err
		}
		wires = append(wires, Wire(v))
	}

	var numInputs int
	switch line[len(line)-1] {
	case "XOR":
		g.Op = XOR
		numInputs = 2
	case "XNOR":
		g.Op = XNOR
		numInputs = 2
	case "AND":
		g.Op = AND
		numInputs = 2
	case "OR":
		g.Op = OR
		numInputs = 2
	case "INV":
		g.Op = INV
		numInputs = 1
	case "EQW":
		g.Op = EQW
		numInputs = 1
	default:
		return g, errors.Newf("invalid operation '%s'", line[len(line)-1])
	}
	if n1 != numInputs {
		return g, errors.Newf("%s: got %d inputs, expected %d",
			g.Op, n1, numInputs)
	}

	g.Input0 = wires[0]
	if numInputs == 2 {
		g.Input1 = wires[1]
	}
	g.Output = wires[n1]

	return g, nil
}

func readIO(r *bufio.Reader, name string) (IO, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s line", name)
	}
	if len(line) < 1 {
		return nil, errors.Newf("invalid %s line", name)
	}
	count, err := atoi(line[0])
	if err != nil {
		return nil, err
	}
	if len(line) != count+1 {
		return nil, errors.Newf("invalid %s line: got %d sizes, expected %d",
			name, len(line)-1, count)
	}
	var result IO
	for i := 0; i < count; i++ {
		size, err := atoi(line[1+i])
		if err != nil {
			return nil, err
		}
		result = append(result, IOArg{
			Size: size,
		})
	}
	return result, nil
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number '%s'", s)
	}
	if v < 0 {
		return 0, errors.Newf("negative number %d", v)
	}
	return v, nil
}

func readLine(r *bufio.Reader) ([]string, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			if err == io.EOF {
				return nil, err
			}
			continue
		}
		return reParts.Split(line, -1), nil
	}
}
