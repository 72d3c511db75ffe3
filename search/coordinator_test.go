package search

import (
	"sync"
	"testing"

	"weiqi/board"

	"github.com/stretchr/testify/require"
)

// TestNextMoveSingleThreadTinyBudget covers S1: the returned move is legal,
// every root child gets a record, and the playout budget is met. NextMove
// tears down its table before returning, so the root-child and visit-count
// assertions run against a SearchContext driven directly with the same
// configuration, mirroring TestSearchInvariantsSweep.
func TestNextMoveSingleThreadTinyBudget(t *testing.T) {
	root := board.New(3)

	player, err := NewUctPlayer(1, 10, 1)
	require.NoError(t, err)
	move := player.NextMove(root)
	require.Contains(t, root.PlayableIndexes(board.Black), move)

	ctx := &SearchContext{
		table:       NewTranspositionTable(),
		target:      10,
		seed:        1,
		exploration: defaultExploration,
		metrics:     NewNoMetricsCollector(),
	}
	searchWorker(ctx, root, 0)

	totalVisits := 0
	for _, m := range root.PlayableIndexes(board.Black) {
		rec, ok := ctx.table.GetChild(root, m)
		require.True(t, ok, "every root child must have a record once the budget is met")
		totalVisits += rec.Visits()
	}
	require.GreaterOrEqual(t, totalVisits, 10)
}

// TestNextMoveDeterministicSingleThread covers S2: two fresh players with
// identical configuration return the same move.
func TestNextMoveDeterministicSingleThread(t *testing.T) {
	root := board.New(3)

	a, err := NewUctPlayer(1, 50, 1)
	require.NoError(t, err)
	b, err := NewUctPlayer(1, 50, 1)
	require.NoError(t, err)

	require.Equal(t, a.NextMove(root), b.NextMove(root))
}

// TestNextMoveRejectsBoardWithNoLegalMoves covers S4: the core panics
// rather than silently handling a forced pass.
func TestNextMoveRejectsBoardWithNoLegalMoves(t *testing.T) {
	player, err := NewUctPlayer(1, 10, 1)
	require.NoError(t, err)

	full := fullBoard(t)

	require.Panics(t, func() {
		player.NextMove(full)
	})
}

// TestNextMoveAvoidsSuicideCandidate covers S5: on a position with exactly
// one suicide candidate for the side to move, NextMove never returns it.
func TestNextMoveAvoidsSuicideCandidate(t *testing.T) {
	root, suicidePoint := suicideSetup(t)

	player, err := NewUctPlayer(7, 80, 2)
	require.NoError(t, err)

	move := player.NextMove(root)

	require.NotEqual(t, suicidePoint, move)
}

// TestSearchInvariantsSweep covers S6: after a search, every stored record
// satisfies the statistical invariants of §4.1. This bypasses UctPlayer to
// reach the table the search populated, since NextMove discards it.
func TestSearchInvariantsSweep(t *testing.T) {
	root := board.New(3)
	ctx := &SearchContext{
		table:       NewTranspositionTable(),
		target:      60,
		seed:        3,
		exploration: defaultExploration,
		metrics:     NewNoMetricsCollector(),
	}

	var wg sync.WaitGroup
	for id := 0; id < 3; id++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			searchWorker(ctx, root, workerID)
		}(id)
	}
	wg.Wait()

	ctx.table.Each(func(rec *NodeRecord) {
		require.GreaterOrEqual(t, rec.Visits(), 1)
		require.GreaterOrEqual(t, rec.AverageProfit(), 0.0)
		require.LessOrEqual(t, rec.AverageProfit(), 1.0)
		require.False(t, rec.InSearch())
	})
}

// fullBoard builds an empty 1x1 board: Black's only point has no neighbor,
// so playing there is suicide and Black has zero legal moves.
func fullBoard(t *testing.T) board.Board {
	t.Helper()
	b := board.New(1)
	require.True(t, b.IsSuicide(board.PositionIndex(0)))
	return b
}

// suicideSetup builds a 5x5 position where White has exactly one candidate
// move that is suicide: a single empty point fully surrounded by Black
// with no captures available to White there.
//
// Board (B=black, W=white, .=empty), White to move:
//
//	. . . . .
//	. . B . .
//	. B . B .
//	. . B . .
//	W W W . .
//
// The center point (index 12) is empty and surrounded on all four sides by
// Black stones with no White group adjacent, so playing there is suicide
// for White; every other empty point has an empty neighbor.
func suicideSetup(t *testing.T) (board.Board, board.PositionIndex) {
	t.Helper()
	b := board.New(5)
	blackMoves := []board.PositionIndex{7, 11, 13, 17}
	whiteMoves := []board.PositionIndex{20, 21, 22}

	for i, m := range blackMoves {
		b = b.Play(m)
		if i < len(whiteMoves) {
			b = b.Play(whiteMoves[i])
		}
	}

	require.Equal(t, board.White, b.NextSide())
	require.True(t, b.IsSuicide(board.PositionIndex(12)))
	return b, board.PositionIndex(12)
}
