//
// Copyright (c) 2022-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"math/big"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var adder2 = `4 8
2 2 2
1 2

2 1 0 2 4 AND
2 1 1 3 5 XOR
2 1 0 2 6 XOR
2 1 5 4 7 XOR
`

func TestParse(t *testing.T) {
	c, err := ParseBristol(strings.NewReader(adder2))
	require.NoError(t, err)
	require.Equal(t, 4, c.NumGates)
	require.Equal(t, 8, c.NumWires)
	require.Equal(t, 4, c.Inputs.Size())
	require.Equal(t, 2, c.Outputs.Size())
	require.Equal(t, 1, c.NumInteractive())
	require.Equal(t, 3, c.Stats[XOR])
	require.Equal(t, []Wire{6, 7}, c.OutputWires())
	require.Equal(t, "#gates=4 (XOR=3 AND=1) #w=8", c.String())
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"1\n",
		"1 3\n2 1 1\n1 1\n",
		"1 3\n2 1 1\n1 1\n\n2 1 0 1 2 NAND\n",
		"1 3\n2 1 1\n1 1\n\n2 1 0 5 2 AND\n",
		"1 3\n2 1 1\n1 1\n\n2 1 0 1 1 AND\n",
		"1 3\n2 1 1\n1 1\n\n1 1 0 2 AND\n",
		"1 3\n3 1 1\n1 1\n\n2 1 0 1 2 AND\n",
	}
	for idx, test := range tests {
		_, err := ParseBristol(strings.NewReader(test))
		require.Error(t, err, "test %d", idx)
	}
}

func TestCompute(t *testing.T) {
	c, err := ParseBristol(strings.NewReader(adder2))
	require.NoError(t, err)

	for a := int64(0); a < 4; a++ {
		for b := int64(0); b < 4; b++ {
			result, err := c.Compute([]*big.Int{big.NewInt(a), big.NewInt(b)})
			require.NoError(t, err)
			require.Len(t, result, 1)
			require.Equal(t, (a+b)%4, result[0].Int64())
		}
	}

	_, err = c.Compute([]*big.Int{big.NewInt(4), big.NewInt(0)})
	require.Error(t, err)
	_, err = c.Compute([]*big.Int{big.NewInt(1)})
	require.Error(t, err)
}

func TestLayers(t *testing.T) {
	c, err := ParseBristol(strings.NewReader(adder2))
	require.NoError(t, err)

	layers := c.Layers()
	require.Len(t, layers, 2)
	require.Empty(t, layers[0].Interactive)
	require.Len(t, layers[0].Local, 2)
	require.Len(t, layers[1].Interactive, 1)
	require.Equal(t, AND, layers[1].Interactive[0].Op)
	require.Len(t, layers[1].Local, 1)
	require.Equal(t, Wire(7), layers[1].Local[0].Output)
}

func TestAdder64(t *testing.T) {
	f, err := os.Open("testdata/adder64.txt")
	require.NoError(t, err)
	defer f.Close()

	c, err := ParseBristol(f)
	require.NoError(t, err)
	require.Equal(t, 63, c.NumInteractive())
	require.Equal(t, 63, c.Depth())

	a, _ := new(big.Int).SetString("fedcba9876543210", 16)
	b, _ := new(big.Int).SetString("0123456789abcdef", 16)
	result, err := c.Compute([]*big.Int{a, b})
	require.NoError(t, err)

	mod := new(big.Int).Lsh(big.NewInt(1), 64)
	expected := new(big.Int).Add(a, b)
	expected.Mod(expected, mod)
	require.Equal(t, 0, expected.Cmp(result[0]))
}

func TestMarshalBristol(t *testing.T) {
	c, err := ParseBristol(strings.NewReader(adder2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.MarshalBristol(&buf))
	require.Equal(t, adder2, buf.String())

	c2, err := ParseBristol(&buf)
	require.NoError(t, err)
	require.Equal(t, c.Gates, c2.Gates)
}

func TestDot(t *testing.T) {
	c, err := ParseBristol(strings.NewReader(adder2))
	require.NoError(t, err)

	var buf bytes.Buffer
	c.Dot(&buf)
	require.Contains(t, buf.String(), "w0 -> g4;")
	require.Contains(t, buf.String(), "rank=same; g4;")
}

func TestOperationEval(t *testing.T) {
	tests := []struct {
		op   Operation
		want [4]bool
	}{
		{XOR, [4]bool{false, true, true, false}},
		{XNOR, [4]bool{true, false, false, true}},
		{AND, [4]bool{false, false, false, true}},
		{OR, [4]bool{false, true, true, true}},
		{INV, [4]bool{true, true, false, false}},
		{EQW, [4]bool{false, false, true, true}},
	}
	for _, test := range tests {
		for i := 0; i < 4; i++ {
			a, b := i&2 != 0, i&1 != 0
			got, err := test.op.Eval(a, b)
			require.NoError(t, err)
			require.Equal(t, test.want[i], got, "%s(%v,%v)", test.op, a, b)
		}
	}
	_, err := Operation(42).Eval(false, false)
	require.Error(t, err)
}
