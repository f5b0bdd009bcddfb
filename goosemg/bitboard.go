package goosemg

import "math/bits"

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// SquareAt returns the square on the given file and rank (both 0-7).
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// File returns the file index (0 = a).
func (s Square) File() int { return int(s) & 7 }

// Rank returns the rank index (0 = first rank).
func (s Square) Rank() int { return int(s) >> 3 }

// Mirror flips the square vertically (a1 <-> a8).
func (s Square) Mirror() Square { return s ^ 56 }

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

const (
	FileA uint64 = 0x0101010101010101
	FileH uint64 = FileA << 7
	Rank1 uint64 = 0xFF
	Rank2 uint64 = Rank1 << 8
	Rank3 uint64 = Rank1 << 16
	Rank4 uint64 = Rank1 << 24
	Rank5 uint64 = Rank1 << 32
	Rank6 uint64 = Rank1 << 40
	Rank7 uint64 = Rank1 << 48
	Rank8 uint64 = Rank1 << 56
)

// FileMask returns the bitboard of the given file (0-7).
func FileMask(file int) uint64 { return FileA << uint(file) }

// RankMask returns the bitboard of the given rank (0-7).
func RankMask(rank int) uint64 { return Rank1 << uint(rank*8) }

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// PopLSB is the exported form of popLSB for packages iterating bitboards.
func PopLSB(mask *uint64) Square { return popLSB(mask) }

// LSB returns the lowest set square of a non-empty bitboard.
func LSB(b uint64) Square { return Square(bits.TrailingZeros64(b)) }

// MSB returns the highest set square of a non-empty bitboard.
func MSB(b uint64) Square { return Square(63 - bits.LeadingZeros64(b)) }

// PopCount returns the number of set squares.
func PopCount(b uint64) int { return bits.OnesCount64(b) }

