package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chess-core/engine"
	gm "chess-core/goosemg"
	"chess-core/notation"
)

const (
	engineName   = "chess-core"
	engineAuthor = "chess-core authors"
	maxHashMB    = 4096
	maxThreads   = 256
)

// uciServer speaks the UCI protocol. Commands are read one per line; a "go"
// runs in the background so "stop" and "isready" are answered while it
// searches.
type uciServer struct {
	out   io.Writer
	outMu sync.Mutex
	log   zerolog.Logger

	cfg   engine.Config
	eng   *engine.Engine
	board *gm.Board

	cancel context.CancelFunc
	done   chan struct{}
	// untilStop is set while a "go infinite" search holds its bestmove.
	untilStop bool
}

func newUCIServer(cfg engine.Config, out io.Writer) *uciServer {
	return &uciServer{
		out:   out,
		log:   cfg.Logger,
		cfg:   cfg,
		eng:   engine.New(cfg),
		board: gm.NewStartingBoard(),
	}
}

func (s *uciServer) println(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format+"\n", args...)
}

// run processes commands until "quit" or the end of in. A search still
// running at the end of input is allowed to finish; an infinite one is
// stopped.
func (s *uciServer) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name %s", engineName)
			s.println("id author %s", engineAuthor)
			s.println("option name Hash type spin default %d min 1 max %d", s.cfg.HashMB, maxHashMB)
			s.println("option name Threads type spin default %d min 1 max %d", s.cfg.Threads, maxThreads)
			s.println("option name Clear Hash type button")
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.wait()
			s.board = gm.NewStartingBoard()
			s.eng.NewGame()
		case "position":
			s.wait()
			s.position(tokens[1:])
		case "go":
			s.wait()
			s.goSearch(tokens[1:])
		case "stop":
			s.stop()
		case "setoption":
			s.wait()
			s.setOption(tokens[1:])
		case "eval":
			s.println("info string eval %d", engine.Evaluate(s.board))
		case "d":
			info := s.board.Describe()
			s.println("info string fen %s", notation.FEN(s.board))
			s.println("info string status %v result %v legal %d hash %016x", info.Outcome, info.Result, info.LegalMoves, info.Hash)
		case "quit":
			s.stop()
			return nil
		default:
			s.println("info string unknown command %s", tokens[0])
		}
	}
	s.wait()
	return scanner.Err()
}

// position handles "startpos [moves ...]" and "fen <fields> [moves ...]". On
// a bad FEN the previous position is kept; a bad move stops the move list.
func (s *uciServer) position(args []string) {
	if len(args) == 0 {
		s.println("info string malformed position command")
		return
	}
	var b *gm.Board
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		b = gm.NewStartingBoard()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		b, err = notation.BoardFromFEN(strings.Join(rest[:end], " "))
		if err != nil {
			s.println("info string invalid fen: %v", err)
			return
		}
		rest = rest[end:]
	default:
		s.println("info string invalid position subcommand %s", args[0])
		return
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		if err := notation.PlayMoves(b, rest[1:]...); err != nil {
			s.println("info string %v in position %s", err, notation.FEN(b))
		}
	}
	s.board = b
}

// parseGo turns the arguments of a "go" command into search limits for the
// side to move. A depth or node limit without any clock searches untimed.
func parseGo(args []string, side gm.Color) (engine.Limits, error) {
	var lim engine.Limits
	var wtime, btime, winc, binc time.Duration
	for i := 0; i < len(args); i++ {
		key := strings.ToLower(args[i])
		if key == "infinite" {
			lim.Infinite = true
			if lim.Depth == 0 {
				lim.Depth = engine.MaxDepth - 1
			}
			continue
		}
		if i+1 >= len(args) {
			return lim, fmt.Errorf("missing value for %s", key)
		}
		i++
		n, err := strconv.ParseInt(args[i], 10, 64)
		if err != nil {
			return lim, fmt.Errorf("bad value for %s: %w", key, err)
		}
		ms := time.Duration(n) * time.Millisecond
		switch key {
		case "wtime":
			wtime = ms
		case "btime":
			btime = ms
		case "winc":
			winc = ms
		case "binc":
			binc = ms
		case "movetime":
			lim.MoveTime = ms
		case "depth":
			lim.Depth = int(n)
			if lim.Depth >= engine.MaxDepth {
				lim.Depth = engine.MaxDepth - 1
			}
		case "nodes":
			lim.Nodes = uint64(n)
		case "movestogo":
		default:
			return lim, fmt.Errorf("unknown go option %s", key)
		}
	}
	lim.TimeLeft, lim.Increment = wtime, winc
	if side == gm.Black {
		lim.TimeLeft, lim.Increment = btime, binc
	}
	if lim.TimeLeft == 0 && lim.MoveTime == 0 && (lim.Depth > 0 || lim.Nodes > 0) {
		lim.Infinite = true
	}
	return lim, nil
}

func (s *uciServer) goSearch(args []string) {
	lim, err := parseGo(args, s.board.SideToMove())
	if err != nil {
		s.println("info string %v", err)
		return
	}
	lim.OnIteration = s.info
	untilStop := false
	for _, a := range args {
		if strings.EqualFold(a, "infinite") {
			untilStop = true
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done, s.untilStop = cancel, done, untilStop
	b := s.board.Clone()
	go func() {
		defer close(done)
		r := s.eng.Search(ctx, b, lim)
		if untilStop {
			// UCI forbids bestmove before "stop" in infinite mode.
			<-ctx.Done()
		}
		if r.Move == gm.NoMove {
			s.println("info depth 0 score %s", scoreString(r))
			s.println("bestmove 0000")
			return
		}
		s.println("bestmove %s", r.Move)
	}()
}

func (s *uciServer) info(r engine.Result) {
	nps := uint64(0)
	if ms := r.Elapsed.Milliseconds(); ms > 0 {
		nps = r.Nodes * 1000 / uint64(ms)
	}
	pv := make([]string, len(r.PV))
	for i, m := range r.PV {
		pv[i] = m.String()
	}
	s.println("info depth %d score %s nodes %d nps %d time %d hashfull %d pv %s",
		r.Depth, scoreString(r), r.Nodes, nps, r.Elapsed.Milliseconds(),
		s.eng.TransTable().Hashfull(), strings.Join(pv, " "))
}

func scoreString(r engine.Result) string {
	if n := r.MateIn(); n != 0 {
		return "mate " + strconv.Itoa(n)
	}
	return "cp " + strconv.Itoa(r.Score)
}

// stop cancels a running search and waits for its bestmove.
func (s *uciServer) stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wait()
}

// wait blocks until the current search has printed its bestmove. An infinite
// search never ends on its own, so it is stopped first.
func (s *uciServer) wait() {
	if s.done != nil {
		if s.untilStop {
			s.cancel()
		}
		<-s.done
		s.cancel()
		s.done, s.cancel, s.untilStop = nil, nil, false
	}
}

// setOption handles "name <id...> [value <x>]".
func (s *uciServer) setOption(args []string) {
	var name, value []string
	target := &name
	for _, tok := range args {
		switch strings.ToLower(tok) {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			*target = append(*target, tok)
		}
	}
	key := strings.ToLower(strings.Join(name, " "))
	if key == "clear hash" {
		s.eng.NewGame()
		return
	}
	n, err := strconv.Atoi(strings.Join(value, ""))
	if err != nil {
		s.println("info string bad value for option %s", key)
		return
	}
	switch key {
	case "hash":
		s.cfg.HashMB = engine.Clamp(n, 1, maxHashMB)
	case "threads":
		s.cfg.Threads = engine.Clamp(n, 1, maxThreads)
	default:
		s.println("info string unknown option %s", key)
		return
	}
	s.eng = engine.New(s.cfg)
	s.log.Info().Str("option", key).Int("value", n).Msg("engine rebuilt")
}
