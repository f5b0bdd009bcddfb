package goosemg

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]Move, 0, 256)
	}
	return pc.bufs[depth][:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := b.generatePseudoInto(pc.bufFor(depth), genAll)
	pc.bufs[depth] = moves
	var nodes uint64
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += perftRec(b, depth-1, pc)
		}
		b.UnmakeMove(st)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// below it at the given depth.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	for _, m := range b.GenerateLegalMoves() {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		out[m] = Perft(b, depth-1)
		b.UnmakeMove(st)
	}
	return out
}

// ParallelPerft splits the root moves across up to workers goroutines, each
// walking its own board copy. workers <= 0 uses GOMAXPROCS.
func ParallelPerft(ctx context.Context, b *Board, depth, workers int) (uint64, error) {
	if depth <= 1 {
		return Perft(b, depth), nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var total atomic.Uint64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, m := range b.GenerateLegalMoves() {
		child := b.Clone()
		if ok, _ := child.MakeMove(m); !ok {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			total.Add(Perft(child, depth-1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
