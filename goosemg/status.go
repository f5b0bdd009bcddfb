package goosemg

// Outcome classifies a position as ongoing or as a terminal game state.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawRepetition
	DrawInsufficientMaterial
)

var outcomeNames = [...]string{"ongoing", "checkmate", "stalemate", "fifty-move rule", "threefold repetition", "insufficient material"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// IsDraw reports whether the outcome ends the game in a draw.
func (o Outcome) IsDraw() bool { return o >= Stalemate }

// GameResult is the score of a finished (or unfinished) game.
type GameResult uint8

const (
	ResultOngoing GameResult = iota
	ResultWhiteWins
	ResultBlackWins
	ResultDraw
)

func (r GameResult) String() string {
	switch r {
	case ResultWhiteWins:
		return "1-0"
	case ResultBlackWins:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	}
	return "*"
}

// IsDrawBy50 reports a 50-move rule draw (halfmoveClock counts half-moves).
func (b *Board) IsDrawBy50() bool {
	return b.halfmoveClock >= 100
}

// RepetitionCount returns how many earlier positions in the board's history
// are identical to the current one. Only positions since the last capture or
// pawn move with the same side to move can match, and none before a null
// move that is still on the board.
func (b *Board) RepetitionCount() int {
	n := len(b.history)
	limit := b.halfmoveClock
	if limit > n {
		limit = n
	}
	if d := n - b.nullBoundary; d < limit {
		limit = d
	}
	count := 0
	for i := 2; i <= limit; i += 2 {
		if b.history[n-i] == b.zobristKey {
			count++
		}
	}
	return count
}

// IsDrawByRepetition reports threefold repetition of the current position.
func (b *Board) IsDrawByRepetition() bool { return b.RepetitionCount() >= 2 }

// IsInsufficientMaterial reports a dead position in which neither side can
// deliver mate: no pawns, rooks or queens and at most one minor piece each.
func (b *Board) IsInsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		p := &b.pieceBB[c]
		if p[PieceTypePawn]|p[PieceTypeRook]|p[PieceTypeQueen] != 0 {
			return false
		}
		if PopCount(p[PieceTypeKnight]|p[PieceTypeBishop]) > 1 {
			return false
		}
	}
	return true
}

// IsDrawByRule reports a draw by the fifty-move rule, threefold repetition or
// insufficient material. Stalemate is not included; it needs move generation.
func (b *Board) IsDrawByRule() bool {
	return b.IsDrawBy50() || b.IsDrawByRepetition() || b.IsInsufficientMaterial()
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// Status returns the outcome of the current position. Checkmate and stalemate
// take precedence over the draw rules.
func (b *Board) Status() Outcome {
	if !b.HasLegalMoves() {
		if b.InCheck(b.sideToMove) {
			return Checkmate
		}
		return Stalemate
	}
	switch {
	case b.IsDrawBy50():
		return DrawFiftyMove
	case b.IsDrawByRepetition():
		return DrawRepetition
	case b.IsInsufficientMaterial():
		return DrawInsufficientMaterial
	}
	return Ongoing
}

// Result maps the current status to a game result.
func (b *Board) Result() GameResult {
	switch o := b.Status(); {
	case o == Checkmate && b.sideToMove == White:
		return ResultBlackWins
	case o == Checkmate:
		return ResultWhiteWins
	case o.IsDraw():
		return ResultDraw
	}
	return ResultOngoing
}

// StateInfo is a value snapshot of the board for display.
type StateInfo struct {
	SideToMove     Color
	InCheck        bool
	Checkmate      bool
	Stalemate      bool
	Outcome        Outcome
	Result         GameResult
	LegalMoves     int
	HalfmoveClock  int
	FullmoveNumber int
	Repetitions    int
	Hash           uint64
}

// Describe summarises the current state.
func (b *Board) Describe() StateInfo {
	info := StateInfo{
		SideToMove:     b.sideToMove,
		InCheck:        b.InCheck(b.sideToMove),
		LegalMoves:     len(b.GenerateLegalMoves()),
		HalfmoveClock:  b.halfmoveClock,
		FullmoveNumber: b.fullmoveNumber,
		Repetitions:    b.RepetitionCount(),
		Hash:           b.zobristKey,
	}
	info.Outcome = b.Status()
	info.Result = b.Result()
	info.Checkmate = info.Outcome == Checkmate
	info.Stalemate = info.Outcome == Stalemate
	return info
}
