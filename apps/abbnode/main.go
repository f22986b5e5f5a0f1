//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/abb"
	"github.com/markkurossi/abb/circuit"
	"github.com/markkurossi/abb/env"
	"github.com/markkurossi/abb/p2p"
	"github.com/markkurossi/abb/share"
	"github.com/markkurossi/abb/transport"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	fConfig  = flag.String("config", "", "configuration file")
	fID      = flag.Int("id", 0, "party ID")
	fLocal   = flag.Bool("local", false, "run all three parties in-process")
	fVerbose = flag.Bool("v", false, "verbose output")
	fBatch   = flag.Int("batch", 0, "workload batch size")
	fCircuit = flag.String("circuit", "", "Bristol circuit to evaluate")
)

type nodeConfig struct {
	ID      int
	Listen  string
	Peers   []string
	Session string
	Verbose bool
	Batch   int
	Circuit string
	Triples env.TripleParams
}

func loadConfig() (*nodeConfig, error) {
	def := env.DefaultTripleParams()

	v := viper.New()
	v.SetEnvPrefix("ABB")
	v.AutomaticEnv()
	v.SetDefault("id", 0)
	v.SetDefault("peers", []string{
		"127.0.0.1:9000",
		"127.0.0.1:9001",
		"127.0.0.1:9002",
	})
	v.SetDefault("session", "abb")
	v.SetDefault("batch", 1024)
	v.SetDefault("triples.n", def.N)
	v.SetDefault("triples.l", def.L)
	v.SetDefault("triples.b", def.B)
	v.SetDefault("triples.c", def.C)

	if len(*fConfig) > 0 {
		v.SetConfigFile(*fConfig)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config %s", *fConfig)
		}
	}

	cfg := &nodeConfig{
		ID:      v.GetInt("id"),
		Listen:  v.GetString("listen"),
		Peers:   v.GetStringSlice("peers"),
		Session: v.GetString("session"),
		Verbose: v.GetBool("verbose"),
		Batch:   v.GetInt("batch"),
		Circuit: v.GetString("circuit"),
		Triples: env.TripleParams{
			N: v.GetInt("triples.n"),
			L: v.GetInt("triples.l"),
			B: v.GetInt("triples.b"),
			C: v.GetInt("triples.c"),
		},
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "id":
			cfg.ID = *fID
		case "v":
			cfg.Verbose = *fVerbose
		case "batch":
			cfg.Batch = *fBatch
		case "circuit":
			cfg.Circuit = *fCircuit
		}
	})

	if len(cfg.Peers) != share.NumParties {
		return nil, errors.Newf("expected %d peers, got %d",
			share.NumParties, len(cfg.Peers))
	}
	if _, err := share.PartyFromIndex(cfg.ID); err != nil {
		return nil, err
	}
	if len(cfg.Listen) == 0 {
		cfg.Listen = cfg.Peers[cfg.ID]
	}
	if cfg.Batch <= 0 {
		return nil, errors.Newf("invalid batch size %d", cfg.Batch)
	}
	if err := cfg.Triples.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	var circ *circuit.Circuit
	if len(cfg.Circuit) > 0 {
		f, err := os.Open(cfg.Circuit)
		if err != nil {
			log.Fatal(err)
		}
		circ, err = circuit.ParseBristol(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to parse circuit '%s': %s", cfg.Circuit, err)
		}
		fmt.Printf("Circuit: %v\n", circ)
	}

	if *fLocal {
		err = runLocal(cfg, circ)
	} else {
		err = runNetwork(cfg, circ)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runLocal(cfg *nodeConfig, circ *circuit.Circuit) error {
	links := make(map[share.Party]map[share.Party]transport.Link)
	for _, p := range share.Parties {
		links[p] = make(map[share.Party]transport.Link)
	}
	for _, p := range share.Parties {
		next := p.Next()
		c0, c1 := p2p.Pipe()
		links[p][next] = c0
		links[next][p] = c1
	}

	var relays [share.NumParties]*transport.ConnRelay
	for _, p := range share.Parties {
		r, err := transport.NewConnRelay(p, links[p])
		if err != nil {
			return err
		}
		relays[p] = r
	}

	var timings [share.NumParties]*p2p.Timing
	var g errgroup.Group
	for _, p := range share.Parties {
		g.Go(func() error {
			t, err := runParty(cfg, p, relays[p], circ)
			if err != nil {
				relays[p].Abort()
			}
			timings[p] = t
			return err
		})
	}
	err := g.Wait()
	for _, r := range relays {
		r.Close()
	}
	if err != nil {
		return err
	}
	timings[share.Party0].Print(os.Stdout, relays[share.Party0].Stats())
	return nil
}

func runNetwork(cfg *nodeConfig, circ *circuit.Circuit) error {
	self, err := share.PartyFromIndex(cfg.ID)
	if err != nil {
		return err
	}
	nw, err := p2p.NewNetwork(cfg.Listen, cfg.ID, []byte(cfg.Session))
	if err != nil {
		return err
	}
	defer nw.Close()
	log.Printf("NW %d: listening at %s\n", cfg.ID, nw.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Each party dials the parties with smaller IDs and waits for the
	// others to connect.
	for id := 0; id < cfg.ID; id++ {
		if err := nw.AddPeer(ctx, cfg.Peers[id], id); err != nil {
			return err
		}
	}
	if err := nw.Wait(ctx, share.NumParties-1); err != nil {
		return err
	}

	links := make(map[share.Party]transport.Link)
	for _, p := range share.Parties {
		if p == self {
			continue
		}
		link, err := nw.Link(p.Index())
		if err != nil {
			return err
		}
		links[p] = link
	}
	relay, err := transport.NewConnRelay(self, links)
	if err != nil {
		return err
	}

	timing, err := runParty(cfg, self, relay, circ)
	if err != nil {
		relay.Abort()
		return err
	}
	timing.Print(os.Stdout, nw.Stats())
	return nil
}

type stats interface {
	Stats() p2p.IOStats
}

// runParty runs the demonstration workload for the party.
func runParty(cfg *nodeConfig, self share.Party, relay transport.Relay,
	circ *circuit.Circuit) (*p2p.Timing, error) {

	timing := p2p.NewTiming()
	var last uint64
	xfer := func() []string {
		s, ok := relay.(stats)
		if !ok {
			return nil
		}
		sum := s.Stats().Sum()
		delta := sum - last
		last = sum
		return []string{p2p.FileSize(delta).String()}
	}

	sess, err := abb.Bootstrap(&env.Config{
		Verbose: cfg.Verbose,
		Triples: cfg.Triples,
	}, self, relay)
	if err != nil {
		return nil, err
	}
	timing.Sample("Init", xfer())

	values := make([]share.Arithmetic, cfg.Batch)
	for i := range values {
		values[i] = share.ArithFromConstant(uint64(i), self)
	}
	bin, err := sess.BatchA2B(values)
	if err != nil {
		return nil, err
	}
	timing.Sample("A2B", xfer())

	arith, err := sess.BatchB2A(bin)
	if err != nil {
		return nil, err
	}
	timing.Sample("B2A", xfer())

	cr := sess.Randomness()
	a := cr.RandomBits(cfg.Batch * share.ElementBits)
	b := cr.RandomBits(cfg.Batch * share.ElementBits)
	if _, err := sess.AND(a, b); err != nil {
		return nil, err
	}
	timing.Sample("AND", xfer())

	eq, err := sess.BatchEqual(bin, bin)
	if err != nil {
		return nil, err
	}
	timing.Sample("Equal", xfer())

	choices := make([]share.Binary, len(bin))
	for i := range choices {
		choices[i] = cr.RandomBit()
	}
	muxed, err := sess.BatchMux(choices, bin, bin)
	if err != nil {
		return nil, err
	}
	timing.Sample("Mux", xfer())

	ge, err := sess.BatchCompareGE(muxed, bin)
	if err != nil {
		return nil, err
	}
	timing.Sample("CompareGE", xfer())

	if circ != nil {
		inputs := make([]share.BinaryString, len(circ.Inputs))
		for i, arg := range circ.Inputs {
			inputs[i] = cr.RandomBits(arg.Size)
		}
		if _, err := sess.EvalCircuit(circ, inputs); err != nil {
			return nil, err
		}
		timing.Sample("Circuit", xfer())
	}

	if err := sess.Verify(); err != nil {
		return nil, err
	}
	timing.Sample("Verify", xfer())

	opened, err := sess.OpenFixed(arith)
	if err != nil {
		return nil, err
	}
	for i, v := range opened {
		if v != float64(i) {
			return nil, errors.Newf("value %d: got %v", i, v)
		}
	}
	bits, err := sess.OpenBits(eq)
	if err != nil {
		return nil, err
	}
	for i, b := range bits {
		if !b {
			return nil, errors.Newf("equality %d failed", i)
		}
	}
	bits, err = sess.OpenBits(ge)
	if err != nil {
		return nil, err
	}
	for i, b := range bits {
		if !b {
			return nil, errors.Newf("comparison %d failed", i)
		}
	}
	nonce, err := sess.OpenBytes(cr.RandomBytes(16))
	if err != nil {
		return nil, err
	}
	if len(nonce) != 16 {
		return nil, errors.Newf("nonce: got %d bytes", len(nonce))
	}
	timing.Sample("Open", xfer())

	return timing, nil
}
