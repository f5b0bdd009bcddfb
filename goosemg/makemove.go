package goosemg

import "fmt"

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move          Move
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
}

// Move returns the move this state undoes.
func (st MoveState) Move() Move { return st.move }

// NullState stores the minimal information needed to undo a null move.
type NullState struct {
	prevEnPassant Square
	prevHalfmove  int
	prevZobrist   uint64
	prevBoundary  int
}

// castleKeep[sq] is ANDed into the rights whenever a move starts or ends on sq.
var castleKeep = func() (t [64]CastlingRights) {
	for i := range t {
		t[i] = CastlingAll
	}
	t[E1] &^= CastlingWhiteK | CastlingWhiteQ
	t[H1] &^= CastlingWhiteK
	t[A1] &^= CastlingWhiteQ
	t[E8] &^= CastlingBlackK | CastlingBlackQ
	t[H8] &^= CastlingBlackK
	t[A8] &^= CastlingBlackQ
	return t
}()

// MakeMove applies a pseudo-legal move. It returns ok=false if the move
// leaves the mover's king attacked, in which case the board is restored.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	st.move = m
	st.prevCastling = b.castlingRights
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	b.history = append(b.history, b.zobristKey)

	us := b.sideToMove
	from, to := m.From(), m.To()
	moved := m.MovedPiece()

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	switch {
	case m.IsEnPassant():
		b.removePiece(epVictimSquare(to, us))
	case m.IsCapture():
		b.removePiece(to)
	}

	if promo := m.PromotionPiece(); promo != NoPiece {
		b.removePiece(from)
		b.addPiece(to, promo)
	} else {
		b.shiftPiece(from, to, moved)
	}

	if m.IsCastle() {
		rFrom, rTo := castleRookSquares(to)
		b.shiftPiece(rFrom, rTo, PieceFromType(us, PieceTypeRook))
	}

	if cr := b.castlingRights & castleKeep[from] & castleKeep[to]; cr != b.castlingRights {
		b.zobristKey ^= zobristCastle[b.castlingRights] ^ zobristCastle[cr]
		b.castlingRights = cr
	}

	if m.Flags() == FlagDoublePush {
		b.enPassantSquare = (from + to) / 2
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}

	b.sideToMove = us.Other()
	b.zobristKey ^= zobristSide

	if moved.Type() == PieceTypePawn || m.IsCapture() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	if b.isSquareAttackedWithOcc(b.KingSquare(us), b.sideToMove, b.all) {
		b.UnmakeMove(st)
		return false, st
	}
	return true, st
}

// UnmakeMove undoes a previously made move, restoring board state.
func (b *Board) UnmakeMove(st MoveState) {
	m := st.move
	b.sideToMove = b.sideToMove.Other()
	us := b.sideToMove
	from, to := m.From(), m.To()

	if m.IsCastle() {
		rFrom, rTo := castleRookSquares(to)
		b.shiftPiece(rTo, rFrom, PieceFromType(us, PieceTypeRook))
	}

	if m.IsPromotion() {
		b.removePiece(to)
		b.addPiece(from, m.MovedPiece())
	} else {
		b.shiftPiece(to, from, m.MovedPiece())
	}

	switch {
	case m.IsEnPassant():
		b.addPiece(epVictimSquare(to, us), m.CapturedPiece())
	case m.IsCapture():
		b.addPiece(to, m.CapturedPiece())
	}

	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.zobristKey = st.prevZobrist
	b.history = b.history[:len(b.history)-1]
}

// MakeNullMove passes the turn without moving a piece. Used by null-move
// pruning; never legal in a real game.
func (b *Board) MakeNullMove() (st NullState) {
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevZobrist = b.zobristKey
	st.prevBoundary = b.nullBoundary
	b.history = append(b.history, b.zobristKey)
	b.nullBoundary = len(b.history)

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}
	b.halfmoveClock++
	b.sideToMove = b.sideToMove.Other()
	b.zobristKey ^= zobristSide
	return st
}

// UnmakeNullMove restores the board to the state prior to MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.sideToMove = b.sideToMove.Other()
	b.zobristKey = st.prevZobrist
	b.nullBoundary = st.prevBoundary
	b.history = b.history[:len(b.history)-1]
}

// Undo reverts one Apply call.
type Undo struct {
	state MoveState
	key   uint64
}

// Move returns the move that Apply made.
func (u Undo) Move() Move { return u.state.move }

// Apply plays m if it is in the legal move set of the current position and
// returns the token to take it back. Otherwise it returns ErrIllegalMove and
// leaves the board untouched.
func (b *Board) Apply(m Move) (Undo, error) {
	var legal []Move
	legal = b.GenerateLegalMovesInto(legal)
	for _, lm := range legal {
		if lm != m {
			continue
		}
		before := b.zobristKey
		ok, st := b.MakeMove(m)
		if !ok {
			panic(&InvariantError{Msg: "generated move " + m.String() + " rejected by MakeMove"})
		}
		return Undo{state: st, key: before}, nil
	}
	return Undo{}, fmt.Errorf("%w: %v", ErrIllegalMove, m)
}

// Undo takes back a move made with Apply. The restored position must carry
// exactly the fingerprint it had before; anything else is a defect and panics.
func (b *Board) Undo(u Undo) {
	b.UnmakeMove(u.state)
	if b.zobristKey != u.key {
		panic(&InvariantError{Msg: "fingerprint mismatch after undo of " + u.state.move.String()})
	}
	b.mustValidate()
}
