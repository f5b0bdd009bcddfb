package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-core/engine"
	gm "chess-core/goosemg"
	"chess-core/notation"
)

// boardsvg writes an SVG diagram of a position, optionally marking the move
// the engine would play.
func main() {
	fen := flag.String("fen", notation.FENStartPos, "position to draw")
	out := flag.String("out", "", "output file (default stdout)")
	move := flag.String("move", "", "long algebraic move to highlight")
	think := flag.Duration("think", 0, "search this long and highlight the best move")
	flip := flag.Bool("flip", false, "draw from Black's side")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	b, err := notation.BoardFromFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing FEN")
	}

	highlight := gm.NoMove
	switch {
	case *move != "":
		if highlight, err = notation.ParseMove(b, *move); err != nil {
			log.Fatal().Err(err).Msg("parsing move")
		}
	case *think > 0:
		r := engine.New(engine.DefaultConfig()).Search(context.Background(), b, engine.Limits{MoveTime: *think})
		highlight = r.Move
		log.Info().Str("move", r.Move.String()).Int("score", r.Score).Int("depth", r.Depth).
			Dur("elapsed", r.Elapsed.Round(time.Millisecond)).Msg("searched")
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("creating output")
		}
		defer f.Close()
		w = f
	}
	renderBoard(w, b, highlight, *flip)
}
