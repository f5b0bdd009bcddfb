package goosemg

import (
	"math/rand"
	"testing"
)

func TestVerifyMagics(t *testing.T) {
	if err := VerifyMagics(); err != nil {
		t.Fatal(err)
	}
}

func TestSliderAttacksMatchRayWalk(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		occ := rnd.Uint64() & rnd.Uint64()
		sq := Square(rnd.Intn(64))
		if got, want := RookAttacks(sq, occ), slideAttacks(sq, occ, rookDirs); got != want {
			t.Fatalf("rook %v occ %#x: got %#x want %#x", sq, occ, got, want)
		}
		if got, want := BishopAttacks(sq, occ), slideAttacks(sq, occ, bishopDirs); got != want {
			t.Fatalf("bishop %v occ %#x: got %#x want %#x", sq, occ, got, want)
		}
	}
}

func TestLeaperAttacks(t *testing.T) {
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"knight a1", KnightAttacks(A1), bb(SquareAt(1, 2)) | bb(SquareAt(2, 1))},
		{"king e1", KingAttacks(E1), bb(D1) | bb(F1) | bb(SquareAt(3, 1)) | bb(SquareAt(4, 1)) | bb(SquareAt(5, 1))},
		{"white pawn e4", PawnAttacks(White, SquareAt(4, 3)), bb(SquareAt(3, 4)) | bb(SquareAt(5, 4))},
		{"black pawn a5", PawnAttacks(Black, SquareAt(0, 4)), bb(SquareAt(1, 3))},
		{"white pawn h8", PawnAttacks(White, H8), 0},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %#x want %#x", tc.name, tc.got, tc.want)
		}
	}
}

func TestRookAttacksEmptyBoard(t *testing.T) {
	want := (FileA | Rank1) &^ bb(A1)
	if got := RookAttacks(A1, 0); got != want {
		t.Fatalf("rook a1: got %#x want %#x", got, want)
	}
	// Blockers are included, squares behind them are not.
	d4 := SquareAt(3, 3)
	f6, g7 := SquareAt(5, 5), SquareAt(6, 6)
	att := BishopAttacks(d4, bb(f6))
	if att&bb(f6) == 0 || att&bb(g7) != 0 {
		t.Fatalf("bishop d4 with blocker on f6: %#x", att)
	}
	if QueenAttacks(d4, 0) != RookAttacks(d4, 0)|BishopAttacks(d4, 0) {
		t.Fatalf("queen is not rook|bishop")
	}
}

func TestFindMagic(t *testing.T) {
	if testing.Short() {
		t.Skip("magic search is slow")
	}
	rnd := rand.New(rand.NewSource(42))
	for _, sq := range []Square{A1, SquareAt(3, 3), H8} {
		for _, rook := range []bool{true, false} {
			magic, err := FindMagic(sq, rook, rnd, 1_000_000)
			if err != nil {
				t.Fatal(err)
			}
			mask, dirs := bishopRelevantMask(sq), bishopDirs
			if rook {
				mask, dirs = rookRelevantMask(sq), rookDirs
			}
			if !tryMagic(sq, mask, magic, dirs) {
				t.Fatalf("FindMagic(%v, rook=%v) returned colliding %#x", sq, rook, magic)
			}
		}
	}
}

func TestFindMagicGivesUp(t *testing.T) {
	if _, err := FindMagic(A1, true, rand.New(rand.NewSource(1)), 0); err == nil {
		t.Fatalf("expected an error with no tries allowed")
	}
}
