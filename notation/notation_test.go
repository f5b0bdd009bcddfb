package notation

import (
	"errors"
	"testing"

	gm "chess-core/goosemg"
)

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"8/8/8/8/8/8/8/k1K5 b - - 42 99",
	} {
		b, err := BoardFromFEN(fen)
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		if got := FEN(b); got != fen {
			t.Fatalf("round trip: got %s want %s", got, fen)
		}
	}
}

func TestParseFENDefaultsCounters(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - -")
	if err != nil {
		t.Fatal(err)
	}
	if s.HalfmoveClock != 0 || s.FullmoveNumber != 1 || s.SideToMove != gm.Black {
		t.Fatalf("unexpected setup %+v", s)
	}
}

func TestParseFENErrors(t *testing.T) {
	for _, fen := range []string{
		"",
		"4k3/8/8/8/8/8/8/4K3 x - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w X - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - z9 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - a 1",
		"4k3/8/8/8/8/8/8/4K4 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3/8 w - - 0 1",
	} {
		if _, err := ParseFEN(fen); !errors.Is(err, gm.ErrInvalidPosition) {
			t.Errorf("%q: got %v, want ErrInvalidPosition", fen, err)
		}
	}
}

func TestParseMove(t *testing.T) {
	b := gm.NewStartingBoard()
	m, err := ParseMove(b, "e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "e2e4" || m.Flags() != gm.FlagDoublePush {
		t.Fatalf("got %v flags %d", m, m.Flags())
	}
	if _, err := ParseMove(b, "e2e5"); !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("e2e5: got %v, want ErrIllegalMove", err)
	}
	for _, text := range []string{"e2", "i2i4", "e2e4x", "e7e8k"} {
		if _, err := ParseMove(b, text); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%q: got %v, want ErrSyntax", text, err)
		}
	}
}

func TestParseMovePromotion(t *testing.T) {
	b := MustBoard("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	m, err := ParseMove(b, "a7b8n")
	if err != nil {
		t.Fatal(err)
	}
	if m.PromotionPiece() != gm.WhiteKnight || m.CapturedPiece() != gm.BlackKnight {
		t.Fatalf("got %v", m)
	}
	// A pawn reaching the last rank must name its promotion piece.
	if _, err := ParseMove(b, "a7a8"); !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("a7a8 without piece: got %v", err)
	}
}

func TestPlayMovesStopsAtFirstError(t *testing.T) {
	b := gm.NewStartingBoard()
	err := PlayMoves(b, "e2e4", "e7e5", "e1e3")
	if !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("got %v", err)
	}
	if len(b.History()) != 2 {
		t.Fatalf("expected the two legal moves to stay applied, history %d", len(b.History()))
	}
}

func TestSAN(t *testing.T) {
	tests := []struct {
		fen   string
		moves []string
		uci   string
		want  string
	}{
		{FENStartPos, nil, "g1f3", "Nf3"},
		{FENStartPos, nil, "e2e4", "e4"},
		{"4k3/8/8/8/8/8/8/4K2R w K - 0 1", nil, "e1g1", "O-O"},
		{"k7/8/8/3pP3/8/8/8/7K w - d6 0 2", nil, "e5d6", "exd6"},
		{FENStartPos, []string{"e2e4", "e7e5", "d1h5", "b8c6", "f1c4", "g8f6"}, "h5f7", "Qxf7#"},
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", nil, "a1a8", "Ra8+"},
	}
	for _, tc := range tests {
		b := MustBoard(tc.fen)
		if err := PlayMoves(b, tc.moves...); err != nil {
			t.Fatal(err)
		}
		m, err := ParseMove(b, tc.uci)
		if err != nil {
			t.Fatal(err)
		}
		got, err := SAN(b, m)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("%s %s: got %s want %s", tc.fen, tc.uci, got, tc.want)
		}
	}
}

func TestFormatLine(t *testing.T) {
	b := gm.NewStartingBoard()
	var line []gm.Move
	c := b.Clone()
	for _, text := range []string{"e2e4", "e7e5", "g1f3"} {
		m, err := ParseMove(c, text)
		if err != nil {
			t.Fatal(err)
		}
		line = append(line, m)
		if _, err := c.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := FormatLine(b, line), "1. e4 e5 2. Nf3"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if len(b.History()) != 0 {
		t.Fatalf("FormatLine modified its board")
	}
}
