package main

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	gm "chess-core/goosemg"
)

const squareSize = 60

var glyphs = map[gm.Piece]string{
	gm.WhitePawn: "♙", gm.WhiteKnight: "♘", gm.WhiteBishop: "♗",
	gm.WhiteRook: "♖", gm.WhiteQueen: "♕", gm.WhiteKing: "♔",
	gm.BlackPawn: "♟", gm.BlackKnight: "♞", gm.BlackBishop: "♝",
	gm.BlackRook: "♜", gm.BlackQueen: "♛", gm.BlackKing: "♚",
}

// squareOrigin returns the top-left pixel of sq with White at the bottom,
// or at the top when flipped.
func squareOrigin(sq gm.Square, flip bool) (int, int) {
	file, rank := sq.File(), 7-sq.Rank()
	if flip {
		file, rank = 7-file, 7-rank
	}
	return file * squareSize, rank * squareSize
}

// renderBoard draws b as an SVG diagram. A non-null highlight move is drawn
// as an arrow from its origin to its destination.
func renderBoard(w io.Writer, b *gm.Board, highlight gm.Move, flip bool) {
	canvas := svg.New(w)
	canvas.Start(8*squareSize, 8*squareSize)
	canvas.Title("chess position")

	for sq := gm.Square(0); sq < 64; sq++ {
		x, y := squareOrigin(sq, flip)
		fill := "#b58863"
		if (sq.File()+sq.Rank())%2 == 1 {
			fill = "#f0d9b5"
		}
		canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)
		if p := b.PieceAt(sq); p != gm.NoPiece {
			canvas.Text(x+squareSize/2, y+squareSize*4/5, glyphs[p],
				fmt.Sprintf("font-size:%dpx;text-anchor:middle", squareSize*4/5))
		}
	}

	if b.InCheck(b.SideToMove()) {
		x, y := squareOrigin(b.KingSquare(b.SideToMove()), flip)
		canvas.Rect(x, y, squareSize, squareSize, "fill:none;stroke:#d00;stroke-width:4")
	}

	if highlight != gm.NoMove {
		x1, y1 := squareOrigin(highlight.From(), flip)
		x2, y2 := squareOrigin(highlight.To(), flip)
		half := squareSize / 2
		canvas.Line(x1+half, y1+half, x2+half, y2+half, "stroke:#15781b;stroke-width:8;stroke-opacity:0.7;stroke-linecap:round")
		canvas.Circle(x2+half, y2+half, squareSize/6, "fill:#15781b;fill-opacity:0.7")
	}
	canvas.End()
}
