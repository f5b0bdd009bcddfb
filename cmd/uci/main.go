package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-core/engine"
)

func main() {
	hash := flag.Int("hash", 16, "transposition table size in MB")
	threads := flag.Int("threads", 1, "search threads")
	level := flag.String("log-level", "warn", "log level written to stderr")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	// stdout belongs to the protocol.
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()

	cfg := engine.DefaultConfig()
	cfg.HashMB = *hash
	cfg.Threads = *threads
	cfg.Logger = log.Logger

	if err := newUCIServer(cfg, os.Stdout).run(os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("reading commands")
	}
}
