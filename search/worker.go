package search

import (
	"sync/atomic"

	"weiqi/board"
	"weiqi/playout"
)

// SearchContext is the state shared by every worker goroutine for the
// duration of one NextMove call. Workers hold non-owning references to it;
// none of it survives past that call's WaitGroup.Wait().
type SearchContext struct {
	table        *TranspositionTable
	target       int64
	playoutCount atomic.Int64
	isEnd        atomic.Bool
	seed         uint64
	exploration  float64
	metrics      MetricsCollector
	cancel       <-chan struct{}
}

// searchWorker runs ctx's loop until the playout target is reached: descend
// from root via MaxUCBChild, clone and play that move, then recursively
// back-propagate through visit. Results at the root itself are discarded -
// only the side effects on ctx.table matter to the caller.
func searchWorker(ctx *SearchContext, root board.Board, workerID int) {
	for ctx.playoutCount.Load() < ctx.target && !ctx.isEnd.Load() {
		select {
		case <-ctx.cancel:
			ctx.isEnd.Store(true)
			return
		default:
		}
		move := maxUCBChild(ctx.table, root, workerID, ctx.exploration)
		child := root.Play(move)
		visit(ctx, child, workerID)
	}
}

// visit implements the recursive expand/simulate/backpropagate step of
// §4.4, returning the profit of board from the perspective of the side that
// just moved into it.
func visit(ctx *SearchContext, b board.Board, workerID int) float64 {
	record, ok := ctx.table.Get(b)
	if !ok {
		return expand(ctx, b)
	}
	return backpropagate(ctx, b, record, workerID)
}

// expand handles Case A: a board state with no NodeRecord yet. It runs a
// playout to terminal (skipping the rollout entirely if b is already
// terminal), scores the result, and inserts the leaf record. If another
// worker inserted a record for b while this playout ran, the sample is
// folded into that record instead.
func expand(ctx *SearchContext, b board.Board) float64 {
	final := b
	if !b.IsEnd() {
		p := playout.New(b, nextPlayoutSeed(ctx))
		p.Run()
		final = p.FinalBoard()
	}
	ctx.playoutCount.Add(1)
	ctx.metrics.AddEpisode()

	profit := board.RegionRatio(final, b.LastSide())
	ctx.table.mu.Lock()
	defer ctx.table.mu.Unlock()
	if rec, ok := ctx.table.lookup(b); ok {
		rec.update(profit)
		return profit
	}
	key := b.Key()
	ctx.table.records[key] = append(ctx.table.records[key], entry{board: b, rec: newLeafRecord(profit)})
	return profit
}

// backpropagate handles Case B: a board state whose record already exists.
func backpropagate(ctx *SearchContext, b board.Board, record *NodeRecord, workerID int) float64 {
	ctx.table.setInSearch(record, true)
	defer ctx.table.setInSearch(record, false)

	if b.IsEnd() {
		ctx.playoutCount.Add(1)
		return record.AverageProfit()
	}

	side := b.NextSide()
	legal := b.PlayableIndexes(side)

	var profit float64
	if len(legal) == 0 {
		profit = 1 - visit(ctx, b.Pass(), workerID)
	} else {
		move := maxUCBChild(ctx.table, b, workerID, ctx.exploration)
		if move == board.Pass {
			for _, m := range legal {
				if !b.IsSuicide(m) {
					ctx.metrics.AddCollision()
					break
				}
			}
			profit = 1 - visit(ctx, b.Pass(), workerID)
		} else {
			profit = 1 - visit(ctx, b.Play(move), workerID)
		}
	}

	ctx.table.applySample(record, profit)
	return profit
}

// nextPlayoutSeed derives a per-call seed from the context's base seed and
// the running playout count, so workers draw from reproducible-given-order
// random streams without sharing an *rand.Rand. Distinct counts give
// distinct seeds; two workers that read the same count before either
// increments it get the same seed.
func nextPlayoutSeed(ctx *SearchContext) uint64 {
	return ctx.seed ^ uint64(ctx.playoutCount.Load())
}
