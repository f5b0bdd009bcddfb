package goosemg_test

import (
	"testing"

	gm "chess-core/goosemg"
	"chess-core/notation"
)

func TestFoolsMate(t *testing.T) {
	b := gm.NewStartingBoard()
	if err := notation.PlayMoves(b, "f2f3", "e7e5", "g2g4", "d8h4"); err != nil {
		t.Fatal(err)
	}
	if !b.InCheckmate() {
		t.Fatalf("expected checkmate")
	}
	if got := b.Status(); got != gm.Checkmate {
		t.Fatalf("status: got %v want %v", got, gm.Checkmate)
	}
	if got := b.Result(); got != gm.ResultBlackWins {
		t.Fatalf("result: got %v want 0-1", got)
	}
}

func TestScholarsMate(t *testing.T) {
	b := gm.NewStartingBoard()
	if err := notation.PlayMoves(b, "e2e4", "e7e5", "d1h5", "b8c6", "f1c4", "g8f6", "h5f7"); err != nil {
		t.Fatal(err)
	}
	if got := b.Status(); got != gm.Checkmate {
		t.Fatalf("status: got %v want %v", got, gm.Checkmate)
	}
	if got := b.Result().String(); got != "1-0" {
		t.Fatalf("result: got %s want 1-0", got)
	}
	if n := len(b.GenerateLegalMoves()); n != 0 {
		t.Fatalf("checkmated side has %d legal moves", n)
	}
}

func TestStalemate(t *testing.T) {
	b := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !b.InStalemate() || b.InCheckmate() {
		t.Fatalf("expected stalemate")
	}
	if got := b.Status(); got != gm.Stalemate {
		t.Fatalf("status: got %v want %v", got, gm.Stalemate)
	}
	if got := b.Result(); got != gm.ResultDraw {
		t.Fatalf("result: got %v want draw", got)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/R3K3 w - - 99 60")
	if b.IsDrawBy50() {
		t.Fatalf("99 half-moves is not yet a draw")
	}
	if err := notation.PlayMoves(b, "a1a2"); err != nil {
		t.Fatal(err)
	}
	if got := b.Status(); got != gm.DrawFiftyMove {
		t.Fatalf("status: got %v want %v", got, gm.DrawFiftyMove)
	}
}

// Mate on the hundredth half-move still counts as mate.
func TestCheckmateBeatsFiftyMoveRule(t *testing.T) {
	b := mustBoard(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 100 80")
	if got := b.Status(); got != gm.Checkmate {
		t.Fatalf("status: got %v want %v", got, gm.Checkmate)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	b := gm.NewStartingBoard()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	if err := notation.PlayMoves(b, shuffle...); err != nil {
		t.Fatal(err)
	}
	if got := b.RepetitionCount(); got != 1 {
		t.Fatalf("repetitions after one cycle: got %d want 1", got)
	}
	if b.Status() != gm.Ongoing {
		t.Fatalf("twofold repetition is not a draw")
	}
	if err := notation.PlayMoves(b, shuffle...); err != nil {
		t.Fatal(err)
	}
	if got := b.Status(); got != gm.DrawRepetition {
		t.Fatalf("status: got %v want %v", got, gm.DrawRepetition)
	}
	if !b.IsDrawByRule() {
		t.Fatalf("IsDrawByRule should report the repetition")
	}
}

// A pawn move resets the window in which earlier positions can repeat.
func TestRepetitionWindowResetByPawnMove(t *testing.T) {
	b := gm.NewStartingBoard()
	if err := notation.PlayMoves(b, "g1f3", "g8f6", "f3g1", "f6g8", "e2e4", "e7e5"); err != nil {
		t.Fatal(err)
	}
	if got := b.RepetitionCount(); got != 0 {
		t.Fatalf("repetitions: got %d want 0", got)
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"4kn2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/1NN1K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},
	}
	for _, tc := range tests {
		b := mustBoard(t, tc.fen)
		if got := b.IsInsufficientMaterial(); got != tc.want {
			t.Errorf("%s: got %v want %v", tc.fen, got, tc.want)
		}
		if tc.want && b.Status() != gm.DrawInsufficientMaterial {
			t.Errorf("%s: status %v", tc.fen, b.Status())
		}
	}
}

func TestDescribeStartingPosition(t *testing.T) {
	info := gm.NewStartingBoard().Describe()
	if info.LegalMoves != 20 || info.InCheck || info.Checkmate || info.Stalemate {
		t.Fatalf("unexpected state %+v", info)
	}
	if info.Outcome != gm.Ongoing || info.Result.String() != "*" {
		t.Fatalf("outcome %v result %v", info.Outcome, info.Result)
	}
	if info.SideToMove != gm.White || info.FullmoveNumber != 1 {
		t.Fatalf("unexpected counters %+v", info)
	}
}
