package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-core/engine"
	"chess-core/notation"
)

func main() {
	depthFlag := flag.Int("depth", 10, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", notation.FENStartPos, "FEN to search")
	threads := flag.Int("threads", 1, "Lazy SMP workers")
	hashMB := flag.Int("hash", 64, "transposition table size in MB")
	moveTime := flag.Duration("movetime", 0, "stop each search after this long (0 = depth only)")
	verbose := flag.Bool("v", false, "log every iteration")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	cfg := engine.DefaultConfig()
	cfg.Threads = *threads
	cfg.HashMB = *hashMB
	cfg.Logger = log.Logger
	eng := engine.New(cfg)

	lim := engine.Limits{Depth: *depthFlag, Infinite: true}
	if *moveTime > 0 {
		lim.MoveTime, lim.Infinite = *moveTime, false
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d threads=%d\n", *fenFlag, *depthFlag, *repeatFlag, *threads)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position and tables for each run
		board, err := notation.BoardFromFEN(*fenFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("parsing FEN")
		}
		eng.NewGame()

		r := eng.Search(context.Background(), board, lim)
		totalNodes += r.Nodes
		fmt.Printf("iteration %d: bestmove %v score %d depth %d nodes %d time=%v pv %s\n",
			i+1, r.Move, r.Score, r.Depth, r.Nodes, r.Elapsed, notation.FormatLine(board, r.PV))
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nps: %.0f\n", totalElapsed, float64(totalNodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
