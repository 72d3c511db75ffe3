package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"weiqi/board"
)

// UctPlayer is the search coordinator: it owns a move's TranspositionTable
// for its lifetime, spawns worker goroutines against it, and selects the
// move with the most root-child visits once they finish.
type UctPlayer struct {
	seed            uint64
	playoutsPerMove int
	threadCount     int

	logger      zerolog.Logger
	metrics     MetricsCollector
	ctx         context.Context
	exploration float64
}

// NewUctPlayer constructs a player that targets playoutsPerMove total
// playouts per NextMove call, spread across threadCount worker goroutines.
// Returns an error if either parameter is below its minimum - a recoverable
// misconfiguration, not a precondition violation.
func NewUctPlayer(seed uint64, playoutsPerMove, threadCount int, opts ...Option) (*UctPlayer, error) {
	if playoutsPerMove < 1 {
		return nil, fmt.Errorf("search: playoutsPerMove must be at least 1, got %d", playoutsPerMove)
	}
	if threadCount < 1 {
		return nil, fmt.Errorf("search: threadCount must be at least 1, got %d", threadCount)
	}

	p := defaultUctPlayer()
	p.seed = seed
	p.playoutsPerMove = playoutsPerMove
	p.threadCount = threadCount
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NextMove runs a fresh search from root and returns the chosen move.
// Panics if root has no legal move for its side to move (§7) - callers are
// responsible for handling a forced pass before reaching the core.
func (p *UctPlayer) NextMove(root board.Board) board.PositionIndex {
	move, _ := p.nextMove(root)
	return move
}

// NextMoveWithMetrics behaves like NextMove but also returns the snapshot
// collected over the run. If the player was not constructed with
// WithMetrics, the returned SearchMetrics is the zero value.
func (p *UctPlayer) NextMoveWithMetrics(root board.Board) (board.PositionIndex, SearchMetrics) {
	return p.nextMove(root)
}

func (p *UctPlayer) nextMove(root board.Board) (board.PositionIndex, SearchMetrics) {
	legal := 0
	for _, m := range root.PlayableIndexes(root.NextSide()) {
		if !root.IsSuicide(m) {
			legal++
		}
	}
	if legal == 0 {
		panic("search: NextMove called on a board with no legal moves")
	}

	ctx := &SearchContext{
		table:       NewTranspositionTable(),
		target:      int64(p.playoutsPerMove),
		seed:        p.seed,
		exploration: p.exploration,
		metrics:     p.metrics,
		cancel:      p.ctx.Done(),
	}
	ctx.metrics.Start()

	p.logger.Info().
		Int("threads", p.threadCount).
		Int("playouts_target", p.playoutsPerMove).
		Msg("search started")
	start := time.Now()

	var wg sync.WaitGroup
	for id := 0; id < p.threadCount; id++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			searchWorker(ctx, root, workerID)
		}(id)
	}
	wg.Wait()

	move := bestChild(ctx.table, root)
	p.logRootChildren(ctx.table, root)

	p.logger.Info().
		Dur("elapsed", time.Since(start)).
		Int64("playouts", ctx.playoutCount.Load()).
		Int("move", int(move)).
		Msg("search completed")

	return move, ctx.metrics.Complete()
}

// logRootChildren emits a Debug-level summary of every root child's
// visit count and average profit, mirroring the corpus's habit of logging
// the full move distribution once a search settles.
func (p *UctPlayer) logRootChildren(table *TranspositionTable, root board.Board) {
	for _, move := range root.PlayableIndexes(root.NextSide()) {
		if root.IsSuicide(move) {
			continue
		}
		rec, ok := table.GetChild(root, move)
		if !ok {
			continue
		}
		p.logger.Debug().
			Int("move", int(move)).
			Int("visits", rec.Visits()).
			Float64("average_profit", rec.AverageProfit()).
			Msg("root child")
	}
}

// BestChild exposes the root-level child-selection rule (§4.5 step 5) for
// callers that already hold a populated table, primarily tests.
func BestChild(table *TranspositionTable, root board.Board) board.PositionIndex {
	return bestChild(table, root)
}
