package engine

import (
	"context"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	gm "chess-core/goosemg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MaxDepth bounds both the iteration depth and the ply stack.
	MaxDepth = 100

	MaxScore  = 32500 // outside every real score; the full window
	Checkmate = 32000 // being mated at the root; mated in n plies is -(Checkmate-n)
	MateBound = Checkmate - MaxDepth
	DrawScore = 0
)

// =============================================================================
// MARGINS
// =============================================================================
var FutilityMargins = [8]int{0, 120, 220, 320, 420, 520, 620, 720}
var RFPMargins = [8]int{0, 100, 200, 300, 400, 500, 600, 700}

const (
	NullMoveMinDepth = 2
	LMRDepthLimit    = 3
	LMRMoveLimit     = 3
	DeltaMargin      = 200

	maxAspirationRetries = 3
	// Nodes between two looks at the context and the node limit.
	checkInterval = 2048
)

// lmrTable[depth][moveNumber] is the late move reduction before adjustments.
var lmrTable [MaxDepth + 1][64]int

func init() {
	for d := 1; d <= MaxDepth; d++ {
		for m := 1; m < 64; m++ {
			lmrTable[d][m] = Clamp(1+d/8+m/16, 0, Max(d-2, 0))
		}
	}
}

// plyData holds the move buffers of one ply so nodes do not allocate.
type plyData struct {
	moves  [256]gm.Move
	scores [256]int
	quiets [256]gm.Move
}

// Searcher is one search worker. It owns everything a search mutates except
// the shared transposition table, so several searchers can run at once on
// separate boards.
type Searcher struct {
	id  int
	cfg Config
	tt  *TransTable
	log zerolog.Logger

	killers KillerStruct
	history HistoryStruct
	pawns   *pawnTable
	stack   [MaxDepth + 1]plyData

	rootMoves []gm.Move

	ctx       context.Context
	nodeLimit uint64
	nodes     uint64
	stopped   bool
	stats     CutStatistics
}

// NewSearcher creates worker id. Worker 0 is the main worker; the others
// perturb their root move order.
func NewSearcher(id int, cfg Config, tt *TransTable) *Searcher {
	return &Searcher{
		id:    id,
		cfg:   cfg,
		tt:    tt,
		log:   cfg.Logger.With().Int("worker", id).Logger(),
		pawns: newPawnTable(),
	}
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// Stats returns the pruning counters of the last search.
func (s *Searcher) Stats() CutStatistics { return s.stats }

// reset prepares the searcher for a new search. History survives between
// searches but is aged; killers do not.
func (s *Searcher) reset(ctx context.Context, nodeLimit uint64) {
	s.ctx = ctx
	s.nodeLimit = nodeLimit
	s.nodes = 0
	s.stopped = false
	s.stats = CutStatistics{}
	s.killers.ClearKillers()
	s.history.ageHistoryTable(gm.White)
	s.history.ageHistoryTable(gm.Black)
}

// checkStop counts a node and reports whether the search must unwind.
func (s *Searcher) checkStop() bool {
	s.nodes++
	if s.stopped {
		return true
	}
	if s.nodes&(checkInterval-1) == 0 {
		if s.ctx.Err() != nil || (s.nodeLimit > 0 && s.nodes >= s.nodeLimit) {
			s.stopped = true
		}
	}
	return s.stopped
}

func (s *Searcher) evaluate(b *gm.Board) int {
	return relative(b, evaluate(b, s.pawns))
}

// isDraw is the draw-by-rule check made on entering a node. A single earlier
// occurrence counts as a repetition inside the search.
func (s *Searcher) isDraw(b *gm.Board) bool {
	if b.RepetitionCount() >= 1 || b.IsInsufficientMaterial() {
		return true
	}
	if b.IsDrawBy50() {
		// Mate on the hundredth half-move still stands.
		return !b.InCheck(b.SideToMove()) || b.HasLegalMoves()
	}
	return false
}

func hasNonPawnMaterial(b *gm.Board, c gm.Color) bool {
	return b.Pieces(c, gm.PieceTypeKnight)|b.Pieces(c, gm.PieceTypeBishop)|
		b.Pieces(c, gm.PieceTypeRook)|b.Pieces(c, gm.PieceTypeQueen) != 0
}

// iterationResult is what one completed iteration of the main loop proved.
type iterationResult struct {
	depth int
	score int
	move  gm.Move
	pv    PVLine
	nodes uint64
}

// iterate runs iterative deepening from startDepth to maxDepth and returns the
// last completed iteration; depth 0 means none completed. b must have legal
// moves. onIteration, if set, sees every completed iteration.
func (s *Searcher) iterate(b *gm.Board, startDepth, maxDepth int, onIteration func(iterationResult)) (best iterationResult) {
	s.orderRootMoves(b)

	prevScore := 0
	for depth := startDepth; depth <= maxDepth; depth++ {
		if s.ctx.Err() != nil {
			break
		}
		score, pv, ok := s.aspiration(b, depth, prevScore)
		if !ok {
			break
		}
		best = iterationResult{depth: depth, score: score, move: pv.GetPVMove(), pv: pv.Clone(), nodes: s.nodes}
		prevScore = score

		s.log.Debug().
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", s.nodes).
			Str("pv", pv.String()).
			Msg("iteration")
		if onIteration != nil {
			onIteration(best)
		}

		// A mate within the searched horizon cannot get shorter.
		if Abs(score) >= MateBound && Checkmate-Abs(score) <= depth {
			break
		}
	}
	return best
}

// orderRootMoves generates the root moves with the hash move first. Helper
// workers shuffle everything after the first move so they explore the tree
// in a different order.
func (s *Searcher) orderRootMoves(b *gm.Board) {
	s.rootMoves = b.GenerateLegalMovesInto(s.rootMoves[:0])

	var ttMove gm.Move
	if s.cfg.UseTT {
		if e, ok := s.tt.Probe(b.Hash()); ok {
			ttMove = e.Move
		}
	}
	ml := moveList{moves: s.rootMoves, scores: make([]int, len(s.rootMoves))}
	s.scoreMoves(&ml, b.SideToMove(), 0, ttMove, gm.NoMove)
	for i := range ml.moves {
		orderNextMove(i, &ml)
	}

	if s.id > 0 && len(s.rootMoves) > 2 {
		rest := s.rootMoves[1:]
		frand.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	}
}

// aspiration searches depth with a window around the previous score, widening
// it on failure and falling back to the full window after
// maxAspirationRetries widenings. ok is false if the search was stopped.
func (s *Searcher) aspiration(b *gm.Board, depth, prev int) (score int, pv PVLine, ok bool) {
	alpha, beta := -MaxScore, MaxScore
	window := s.cfg.AspirationWindow
	if window > 0 && depth >= 4 && Abs(prev) < MateBound {
		alpha, beta = prev-window, prev+window
	}

	for retries := 0; ; retries++ {
		score, pv = s.searchRoot(b, depth, alpha, beta)
		if s.stopped {
			return 0, PVLine{}, false
		}
		failLow := score <= alpha && alpha > -MaxScore
		failHigh := score >= beta && beta < MaxScore
		if !failLow && !failHigh {
			return score, pv, true
		}
		if retries >= maxAspirationRetries {
			alpha, beta = -MaxScore, MaxScore
			continue
		}
		window *= 2
		alpha, beta = Max(score-window, -MaxScore), Min(score+window, MaxScore)
	}
}

// searchRoot searches every root move and moves the best one to the front.
func (s *Searcher) searchRoot(b *gm.Board, depth, alpha, beta int) (int, PVLine) {
	var pv, childPV PVLine
	origAlpha := alpha
	bestScore, bestIdx := -MaxScore, 0

	for i, m := range s.rootMoves {
		ok, st := b.MakeMove(m)
		if !ok {
			panic(&gm.InvariantError{Msg: "root move " + m.String() + " is illegal"})
		}
		var score int
		if i == 0 {
			score = -s.alphabeta(b, -beta, -alpha, depth-1, 1, &childPV, m, false)
		} else {
			score = -s.alphabeta(b, -alpha-1, -alpha, depth-1, 1, &childPV, m, false)
			if score > alpha && score < beta {
				score = -s.alphabeta(b, -beta, -alpha, depth-1, 1, &childPV, m, false)
			}
		}
		b.UnmakeMove(st)
		if s.stopped {
			return 0, PVLine{}
		}

		if score > bestScore {
			bestScore, bestIdx = score, i
			pv.Update(m, childPV)
			alpha = Max(alpha, score)
		}
		childPV.Clear()
		if score >= beta {
			break
		}
	}

	best := s.rootMoves[bestIdx]
	copy(s.rootMoves[1:bestIdx+1], s.rootMoves[:bestIdx])
	s.rootMoves[0] = best

	if s.cfg.UseTT {
		s.tt.Store(b.Hash(), depth, 0, best, bestScore, boundFor(bestScore, origAlpha, beta))
	}
	return bestScore, pv
}

func boundFor(score, alpha, beta int) uint8 {
	switch {
	case score >= beta:
		return BetaFlag
	case score > alpha:
		return ExactFlag
	}
	return AlphaFlag
}

func (s *Searcher) alphabeta(b *gm.Board, alpha, beta, depth, ply int, pvLine *PVLine, prevMove gm.Move, didNull bool) int {
	pvLine.Clear()
	if s.checkStop() {
		return 0
	}
	if ply >= MaxDepth {
		return s.evaluate(b)
	}
	if s.isDraw(b) {
		return DrawScore
	}

	isPVNode := beta-alpha > 1
	side := b.SideToMove()
	inCheck := b.InCheck(side)

	// Check extension
	if inCheck {
		depth++
	}

	if depth <= 0 {
		if !b.HasLegalMoves() {
			return DrawScore
		}
		return s.quiescence(b, alpha, beta, ply, 0)
	}

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	key := b.Hash()
	var ttMove gm.Move
	if s.cfg.UseTT {
		if e, ok := s.tt.Probe(key); ok {
			ttMove = e.Move
			if usable, score := useEntry(e, depth, ply, alpha, beta); usable && !isPVNode {
				s.stats.TTCutoffs++
				return score
			}
		}
	}

	staticScore := 0
	if !inCheck {
		staticScore = s.evaluate(b)
	}

	/*
		If our position is so good that even after giving a margin to the opponent,
		we still beat beta, we can safely prune.
	*/
	if s.cfg.Futility && !inCheck && !isPVNode && depth < len(RFPMargins) && Abs(beta) < MateBound {
		if margin := RFPMargins[depth]; staticScore-margin >= beta {
			s.stats.StaticNullCutoffs++
			return staticScore - margin
		}
	}

	/*
		NULL MOVE PRUNING
	*/
	if s.cfg.NullMove && !inCheck && !isPVNode && !didNull && depth >= NullMoveMinDepth &&
		staticScore >= beta && hasNonPawnMaterial(b, side) {
		R := Min(3+depth/3, depth-1)
		var nullPV PVLine
		st := b.MakeNullMove()
		score := -s.alphabeta(b, -beta, -beta+1, depth-1-R, ply+1, &nullPV, gm.NoMove, true)
		b.UnmakeNullMove(st)
		if s.stopped {
			return 0
		}
		if score >= beta {
			s.stats.NullMoveCutoffs++
			if score >= MateBound {
				score = beta
			}
			return score
		}
	}

	buf := &s.stack[ply]
	moves := b.GenerateLegalMovesInto(buf.moves[:0])
	if len(moves) == 0 {
		if inCheck {
			return -Checkmate + ply
		}
		return DrawScore
	}
	ml := moveList{moves: moves, scores: buf.scores[:len(moves)]}
	s.scoreMoves(&ml, side, ply, ttMove, prevMove)

	origAlpha := alpha
	bestScore, bestMove := -MaxScore, gm.NoMove
	quietsTried := buf.quiets[:0]
	var childPVLine PVLine
	legalMoves := 0

	for index := range ml.moves {
		orderNextMove(index, &ml)
		move := ml.moves[index]
		quiet := move.IsQuiet()
		givesCheck := b.GivesCheck(move)

		/*
			At depths 1-7, if static eval + margin can't beat alpha, prune quiet moves.
		*/
		if s.cfg.Futility && legalMoves > 0 && quiet && !givesCheck && !inCheck && !isPVNode &&
			depth < len(FutilityMargins) && Abs(alpha) < MateBound && staticScore+FutilityMargins[depth] <= alpha {
			s.stats.FutilityPrunes++
			continue
		}

		ok, st := b.MakeMove(move)
		if !ok {
			panic(&gm.InvariantError{Msg: "generated move " + move.String() + " is illegal"})
		}
		legalMoves++

		var score int
		if legalMoves == 1 {
			score = -s.alphabeta(b, -beta, -alpha, depth-1, ply+1, &childPVLine, move, false)
		} else {
			/*
				LATE MOVE REDUCTIONS
			*/
			reduction := 0
			if s.cfg.LMR && depth >= LMRDepthLimit && legalMoves > LMRMoveLimit && quiet &&
				!inCheck && !givesCheck && !s.killers.IsKiller(move, ply) {
				reduction = lmrTable[depth][Min(legalMoves, 63)]
				if isPVNode {
					reduction--
				}
				reduction = Clamp(reduction, 0, depth-2)
			}
			score = s.searchMoveWithPVS(b, move, depth-1, reduction, alpha, beta, ply, &childPVLine)
		}
		b.UnmakeMove(st)
		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore, bestMove = score, move
			if score > alpha {
				alpha = score
				pvLine.Update(move, childPVLine)
			}
		}
		childPVLine.Clear()

		// Beta cutoff
		if score >= beta {
			s.stats.BetaCutoffs++
			if quiet {
				s.killers.InsertKiller(move, ply)
				s.history.storeCounter(side, prevMove, move)
				s.history.incrementHistoryScore(side, move, depth)
				for _, failed := range quietsTried {
					s.history.decrementHistoryScore(side, failed)
				}
			}
			break
		}
		if quiet {
			quietsTried = append(quietsTried, move)
		}
	}

	if s.cfg.UseTT {
		s.tt.Store(key, depth, ply, bestMove, bestScore, boundFor(bestScore, origAlpha, beta))
	}
	return bestScore
}

// searchMoveWithPVS performs a Principal Variation Search for a move already
// made on b:
// 1. Search with reduced depth using null window
// 2. If reduction was applied and score > alpha, re-search at full depth with null window
// 3. If score is between alpha and beta, do a full window search
func (s *Searcher) searchMoveWithPVS(b *gm.Board, move gm.Move, depth, reduction, alpha, beta, ply int, childPVLine *PVLine) int {
	score := -s.alphabeta(b, -(alpha + 1), -alpha, depth-reduction, ply+1, childPVLine, move, false)

	if score > alpha && reduction > 0 {
		score = -s.alphabeta(b, -(alpha + 1), -alpha, depth, ply+1, childPVLine, move, false)
	}

	if score > alpha && score < beta {
		score = -s.alphabeta(b, -beta, -alpha, depth, ply+1, childPVLine, move, false)
	}
	return score
}
