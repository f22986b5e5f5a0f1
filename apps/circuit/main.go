//
// main.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/markkurossi/abb/circuit"
)

func main() {
	dot := flag.Bool("dot", false, "print the circuit in Graphviz dot format")
	layers := flag.Bool("layers", false, "print the AND depth layers")
	dump := flag.Bool("dump", false, "print the circuit gates")
	var inputs inputFlags
	flag.Var(&inputs, "i", "circuit input (repeat for each input)")
	flag.Parse()

	for _, file := range flag.Args() {
		f, err := os.Open(file)
		if err != nil {
			log.Fatal(err)
		}
		c, err := circuit.ParseBristol(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to parse circuit '%s': %s", file, err)
		}

		if *dot {
			c.Dot(os.Stdout)
			continue
		}
		fmt.Printf("%s: %v\n", file, c)
		fmt.Printf(" - inputs : %v\n", c.Inputs)
		fmt.Printf(" - outputs: %v\n", c.Outputs)
		fmt.Printf(" - depth  : %d\n", c.Depth())

		if *layers {
			for d, l := range c.Layers() {
				fmt.Printf("layer %d: #interactive=%d #local=%d\n",
					d, len(l.Interactive), len(l.Local))
			}
		}
		if *dump {
			c.Dump(os.Stdout)
		}
		if len(inputs) > 0 {
			result, err := c.Compute(inputs)
			if err != nil {
				log.Fatal(err)
			}
			for idx, r := range result {
				fmt.Printf("result[%d]: %v (0x%x)\n", idx, r, r)
			}
		}
	}
}

type inputFlags []*big.Int

func (i *inputFlags) String() string {
	return fmt.Sprint(*i)
}

func (i *inputFlags) Set(value string) error {
	v, ok := new(big.Int).SetString(value, 0)
	if !ok {
		return fmt.Errorf("invalid input '%s'", value)
	}
	*i = append(*i, v)
	return nil
}
