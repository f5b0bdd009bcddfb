package notation

import (
	"errors"
	"fmt"
	"strings"

	gm "chess-core/goosemg"
)

// ErrSyntax reports move or square text that cannot be decoded at all.
var ErrSyntax = errors.New("notation: syntax error")

// ParseSquare decodes a square name such as "e4".
func ParseSquare(s string) (gm.Square, error) {
	if len(s) != 2 {
		return gm.NoSquare, fmt.Errorf("%w: square %q", ErrSyntax, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return gm.NoSquare, fmt.Errorf("%w: square %q out of range", ErrSyntax, s)
	}
	return gm.SquareAt(int(file-'a'), int(rank-'1')), nil
}

// ParseMove resolves a long algebraic move ("e2e4", "e7e8q") against the
// legal moves of b. Text that names no legal move fails with
// gm.ErrIllegalMove.
func ParseMove(b *gm.Board, text string) (gm.Move, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) < 4 || len(text) > 5 {
		return gm.NoMove, fmt.Errorf("%w: move %q", ErrSyntax, text)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return gm.NoMove, err
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return gm.NoMove, err
	}
	promo := gm.PieceTypeNone
	if len(text) == 5 {
		i := strings.IndexByte("nbrq", text[4])
		if i < 0 {
			return gm.NoMove, fmt.Errorf("%w: promotion piece in %q", ErrSyntax, text)
		}
		promo = gm.PieceType(i) + gm.PieceTypeKnight
	}
	for _, m := range b.GenerateLegalMoves() {
		if m.From() == from && m.To() == to && m.PromotionPieceType() == promo {
			return m, nil
		}
	}
	return gm.NoMove, fmt.Errorf("%w: %s", gm.ErrIllegalMove, text)
}

// PlayMoves parses and applies each move in turn. On error the board keeps
// the moves applied so far.
func PlayMoves(b *gm.Board, moves ...string) error {
	for _, text := range moves {
		m, err := ParseMove(b, text)
		if err != nil {
			return err
		}
		if _, err := b.Apply(m); err != nil {
			return err
		}
	}
	return nil
}
