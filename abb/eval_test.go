//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"math/big"
	"os"
	"strings"
	"testing"

	"github.com/markkurossi/abb/circuit"
	"github.com/markkurossi/abb/share"
	"github.com/stretchr/testify/require"
)

var gates = `4 6
2 1 1
1 4

2 1 0 1 2 OR
2 1 0 1 3 XNOR
1 1 0 4 INV
1 1 1 5 EQW
`

func TestEvalCircuitGates(t *testing.T) {
	circ, err := circuit.ParseBristol(strings.NewReader(gates))
	require.NoError(t, err)

	ss, _ := newSessions(t)
	for a := uint64(0); a < 2; a++ {
		for b := uint64(0); b < 2; b++ {
			expected, err := circ.Compute([]*big.Int{
				new(big.Int).SetUint64(a),
				new(big.Int).SetUint64(b),
			})
			require.NoError(t, err)

			var result [share.NumParties][]share.BinaryString
			ss.runOK(t, func(s *Session) error {
				inputs := []share.BinaryString{
					share.BinaryStringFromConstant(
						share.BitStringFromUint64(a, 1), s.Party()),
					share.BinaryStringFromConstant(
						share.BitStringFromUint64(b, 1), s.Party()),
				}
				var err error
				result[s.Party()], err = s.EvalCircuit(circ, inputs)
				if err != nil {
					return err
				}
				return s.Verify()
			})
			out := share.ReconstructBinaryString(
				[share.NumParties]share.BinaryString{
					result[0][0], result[1][0], result[2][0],
				})
			require.Equal(t, expected[0].Uint64(), out.Uint64(),
				"a=%d, b=%d", a, b)
		}
	}
}

func TestEvalCircuitAdder64(t *testing.T) {
	f, err := os.Open("../circuit/testdata/adder64.txt")
	require.NoError(t, err)
	defer f.Close()
	circ, err := circuit.ParseBristol(f)
	require.NoError(t, err)

	ss, _ := newSessions(t)
	r := testRand(19)
	pairs := [][2]uint64{
		{1, 2},
		{0xffffffffffffffff, 1},
		{0x123456789abcdef0, 0x0fedcba987654321},
	}

	shares := make([][2][share.NumParties]share.BinaryString, len(pairs))
	for i, pair := range pairs {
		for j, v := range pair {
			var err error
			shares[i][j], err = share.DealBinaryString(
				share.BitStringFromUint64(v, 64), r)
			require.NoError(t, err)
		}
	}

	var result [share.NumParties][][]share.BinaryString
	ss.runOK(t, func(s *Session) error {
		p := s.Party()
		inputs := make([][]share.BinaryString, len(pairs))
		for i := range pairs {
			inputs[i] = []share.BinaryString{shares[i][0][p], shares[i][1][p]}
		}
		var err error
		result[p], err = s.BatchEvalCircuit(circ, inputs)
		if err != nil {
			return err
		}
		return s.Verify()
	})
	for i, pair := range pairs {
		out := share.ReconstructBinaryString(
			[share.NumParties]share.BinaryString{
				result[0][i][0], result[1][i][0], result[2][i][0],
			})
		require.Equal(t, pair[0]+pair[1], out.Uint64(), "%x+%x",
			pair[0], pair[1])
	}
}

func TestEvalCircuitInputs(t *testing.T) {
	circ, err := circuit.ParseBristol(strings.NewReader(gates))
	require.NoError(t, err)
	ss, _ := newSessions(t)

	_, err = ss[0].EvalCircuit(circ, []share.BinaryString{
		share.NewBinaryString(1),
	})
	require.Error(t, err)

	_, err = ss[0].EvalCircuit(circ, []share.BinaryString{
		share.NewBinaryString(1),
		share.NewBinaryString(2),
	})
	require.Error(t, err)
}
