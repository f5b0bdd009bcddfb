package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	gm "chess-core/goosemg"
)

// Result is the outcome of a search. Score is from the side to move's point
// of view. When the root has no legal moves Move is NoMove and Outcome says
// whether that is checkmate or stalemate.
type Result struct {
	Move    gm.Move
	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []gm.Move
	Outcome gm.Outcome
}

// MateIn returns the number of moves to mate for a mate score, negative when
// the side to move is being mated, and 0 otherwise.
func (r Result) MateIn() int {
	switch {
	case r.Score >= MateBound:
		return (Checkmate - r.Score + 1) / 2
	case r.Score <= -MateBound:
		return -(Checkmate + r.Score + 1) / 2
	}
	return 0
}

// Engine runs Lazy SMP searches: every worker searches the same root on its
// own board copy, and they share one transposition table. Searches on one
// Engine run one at a time.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	tt        *TransTable
	searchers []*Searcher
	log       zerolog.Logger
}

// New creates an engine; zero numeric fields of cfg take their defaults.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	tt := NewTransTable(cfg.HashMB, cfg.Replace)
	tt.SetEnabled(cfg.UseTT)
	e := &Engine{cfg: cfg, tt: tt, log: cfg.Logger}
	for id := 0; id < cfg.Threads; id++ {
		e.searchers = append(e.searchers, NewSearcher(id, cfg, tt))
	}
	return e
}

// Config returns the engine's settings after defaulting.
func (e *Engine) Config() Config { return e.cfg }

// TransTable exposes the shared table, mostly for Hashfull reporting.
func (e *Engine) TransTable() *TransTable { return e.tt }

// NewGame forgets everything learned in earlier searches.
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt.Clear()
	for _, s := range e.searchers {
		s.history.clear()
		s.pawns.clear()
	}
}

// Search looks for the best move in b within lim. b is not modified. It
// returns when the depth limit is reached, a mate is proven, the time budget
// or node limit runs out, or ctx is cancelled; the result always comes from
// the deepest fully completed iteration.
func (e *Engine) Search(ctx context.Context, b *gm.Board, lim Limits) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := time.Now()

	if !b.HasLegalMoves() {
		r := Result{Outcome: gm.Stalemate}
		if b.InCheck(b.SideToMove()) {
			r.Outcome = gm.Checkmate
			r.Score = -Checkmate
		}
		r.Elapsed = time.Since(start)
		return r
	}

	depth := lim.Depth
	if depth <= 0 {
		depth = e.cfg.MaxDepth
	}
	depth = Min(depth, MaxDepth-1)

	if budget := moveBudget(b, lim, e.cfg.MoveTime); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	helpersCtx, stopHelpers := context.WithCancel(ctx)
	defer stopHelpers()

	e.tt.NewSearch()
	e.log.Info().
		Int("threads", len(e.searchers)).
		Int("depth", depth).
		Uint64("nodes", lim.Nodes).
		Msg("search started")

	results := make([]iterationResult, len(e.searchers))
	g := new(errgroup.Group)
	for id, s := range e.searchers {
		id, s := id, s
		board := b.Clone()
		g.Go(func() error {
			wctx, startDepth := helpersCtx, 1+id%2
			var report func(iterationResult)
			if id == 0 {
				// The main worker finishing ends the search for everyone.
				defer stopHelpers()
				wctx, startDepth = ctx, 1
				if lim.OnIteration != nil {
					report = func(it iterationResult) {
						lim.OnIteration(Result{
							Move:    it.move,
							Score:   it.score,
							Depth:   it.depth,
							Nodes:   it.nodes,
							Elapsed: time.Since(start),
							PV:      it.pv.Moves,
							Outcome: gm.Ongoing,
						})
					}
				}
			}
			s.reset(wctx, lim.Nodes)
			results[id] = s.iterate(board, Min(startDepth, depth), depth, report)
			return nil
		})
	}
	_ = g.Wait()

	best := pickResult(results)
	var nodes uint64
	var cuts CutStatistics
	for _, s := range e.searchers {
		nodes += s.nodes
		cuts.add(s.stats)
	}

	r := Result{
		Move:    best.move,
		Score:   best.score,
		Depth:   best.depth,
		Nodes:   nodes,
		PV:      best.pv.Moves,
		Outcome: gm.Ongoing,
	}
	if r.Move == gm.NoMove {
		// Stopped before the first iteration finished.
		r.Move = b.GenerateLegalMoves()[0]
		r.Score = relative(b, Evaluate(b))
		r.PV = []gm.Move{r.Move}
	}
	r.Elapsed = time.Since(start)

	e.log.Info().
		Str("move", r.Move.String()).
		Int("score", r.Score).
		Int("depth", r.Depth).
		Uint64("nodes", r.Nodes).
		Dur("elapsed", r.Elapsed).
		Int("hashfull", e.tt.Hashfull()).
		Object("cuts", cuts).
		Msg("search finished")
	return r
}

// pickResult reduces the workers' results: the deepest completed iteration
// wins and equal depths go to the higher score. Workers that completed no
// iteration are ignored.
func pickResult(results []iterationResult) iterationResult {
	var best iterationResult
	for _, r := range results {
		if r.depth == 0 || r.move == gm.NoMove {
			continue
		}
		if best.depth == 0 || r.depth > best.depth || (r.depth == best.depth && r.score > best.score) {
			best = r
		}
	}
	return best
}
