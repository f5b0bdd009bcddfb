package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	gm "chess-core/goosemg"
	"chess-core/notation"
)

func main() {
	fen := flag.String("fen", notation.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	workers := flag.Int("workers", 1, "Split root moves across N goroutines (0 = GOMAXPROCS)")
	verify := flag.Bool("verify", false, "Cross-check the node count against dragontoothmg")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := notation.BoardFromFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Str("fen", *fen).Msg("parsing FEN")
	}

	if *divide {
		div := gm.PerftDivide(board, *depth)
		type kv struct {
			m gm.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("starting cpu profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		n, err := gm.ParallelPerft(context.Background(), board, *depth, *workers)
		if err != nil {
			log.Fatal().Err(err).Msg("perft")
		}
		totalNodes += n
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		ref := dragontoothmg.ParseFen(*fen)
		want := dragontoothPerft(&ref, *depth) * uint64(*repeat)
		if want != totalNodes {
			log.Error().Uint64("got", totalNodes).Uint64("want", want).Msg("perft mismatch")
			os.Exit(1)
		}
		log.Info().Uint64("nodes", want).Msg("dragontoothmg agrees")
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating memprofile")
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("writing heap profile")
		}
		_ = f.Close()
	}
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}
