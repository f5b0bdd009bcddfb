package goosemg

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Zobrist keys. Pieces are indexed by their Piece code, so the unused codes
// between the colours simply waste a few rows.
var (
	zobristPiece     [15][64]uint64
	zobristCastle    [16]uint64 // one key per rights combination
	zobristEnPassant [8]uint64  // by file
	zobristSide      uint64     // Black to move
)

// zobristSeed pins the key stream, so hashes are identical across runs,
// processes and machines.
var zobristSeed = [32]byte{'c', 'h', 'e', 's', 's', '-', 'c', 'o', 'r', 'e', '/', 'z', 'o', 'b', 'r', 'i', 's', 't'}

func init() {
	fillZobrist(frand.NewCustom(zobristSeed[:], 1024, 12))
}

func fillZobrist(rng *frand.RNG) {
	var buf [8]byte
	next := func() uint64 {
		for {
			rng.Read(buf[:])
			if k := binary.LittleEndian.Uint64(buf[:]); k != 0 {
				return k
			}
		}
	}
	for _, pt := range []PieceType{PieceTypePawn, PieceTypeKnight, PieceTypeBishop, PieceTypeRook, PieceTypeQueen, PieceTypeKing} {
		for _, c := range []Color{White, Black} {
			p := PieceFromType(c, pt)
			for sq := range zobristPiece[p] {
				zobristPiece[p][sq] = next()
			}
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = next()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = next()
	}
	zobristSide = next()
}

// ComputeZobrist calculates the Zobrist hash of the board from scratch. The
// incrementally updated Hash must always equal it.
func (b *Board) ComputeZobrist() uint64 {
	key := zobristCastle[b.castlingRights]
	for occ := b.all; occ != 0; {
		sq := popLSB(&occ)
		key ^= zobristPiece[b.pieces[sq]][sq]
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	if b.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	return key
}
