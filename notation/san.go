package notation

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	gm "chess-core/goosemg"
)

func isLegal(b *gm.Board, m gm.Move) bool {
	for _, lm := range b.GenerateLegalMoves() {
		if lm == m {
			return true
		}
	}
	return false
}

// SAN renders a legal move of b in standard algebraic notation ("Nf3",
// "exd6", "O-O", "Qxf7#").
func SAN(b *gm.Board, m gm.Move) (string, error) {
	if !isLegal(b, m) {
		return "", fmt.Errorf("%w: %v", gm.ErrIllegalMove, m)
	}
	opt, err := chess.FEN(FEN(b))
	if err != nil {
		return "", fmt.Errorf("notation: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	// Generated moves carry the check and capture tags the encoder needs.
	uci := m.String()
	for _, cm := range pos.ValidMoves() {
		if cm.String() == uci {
			return chess.AlgebraicNotation{}.Encode(pos, cm), nil
		}
	}
	return "", fmt.Errorf("notation: %s rejected by SAN encoder", uci)
}

// FormatLine renders a move sequence from b in SAN, with move numbers.
// b is not modified. Rendering stops at the first move that is not legal.
func FormatLine(b *gm.Board, line []gm.Move) string {
	c := b.Clone()
	var sb strings.Builder
	for i, m := range line {
		san, err := SAN(c, m)
		if err != nil {
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		if c.SideToMove() == gm.White {
			fmt.Fprintf(&sb, "%d. ", c.FullmoveNumber())
		} else if i == 0 {
			fmt.Fprintf(&sb, "%d... ", c.FullmoveNumber())
		}
		sb.WriteString(san)
		if _, err := c.Apply(m); err != nil {
			break
		}
	}
	return sb.String()
}
