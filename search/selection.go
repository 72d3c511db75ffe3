package search

import (
	"fmt"
	"math"

	"weiqi/board"
)

// ucb scores a known child under the UCB1 rule:
// average_profit + exploration*sqrt(ln(visitedSum) / visits), which with the
// default exploration of sqrt(2) is average_profit + sqrt(2*ln(visitedSum) / visits).
func ucb(rec *NodeRecord, visitedSum int, exploration float64) float64 {
	if rec.Visits() <= 0 {
		panic("search: ucb requires a child with at least one visit")
	}
	return rec.AverageProfit() + exploration*math.Sqrt(math.Log(float64(visitedSum))/float64(rec.Visits()))
}

// maxUCBChild picks the move to descend into from parent, per §4.3:
//
//  1. suicide candidates are dropped up front - the source's reference
//     form only screens them out of the already-known branch, but an
//     unvisited suicide candidate can never actually be played, so
//     screening it here too is what keeps property 6 ("no suicide
//     selected") true unconditionally rather than just in the common case;
//  2. any move whose child has never been visited is preferred, biased by
//     workerID so concurrent workers spread out over the unvisited moves
//     instead of piling onto the same one;
//  3. otherwise, the known child with the greatest UCB score wins, skipping
//     children currently marked in-search;
//  4. PASS if every known child is disqualified.
//
// Panics if parent has no legal moves at all - callers only reach this
// function on boards that satisfy that precondition (§7).
func maxUCBChild(table *TranspositionTable, parent board.Board, workerID int, exploration float64) board.PositionIndex {
	side := parent.NextSide()
	legal := parent.PlayableIndexes(side)
	if len(legal) == 0 {
		panic("search: maxUCBChild called on a board with no legal moves")
	}

	candidates := make([]board.PositionIndex, 0, len(legal))
	for _, m := range legal {
		if !parent.IsSuicide(m) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return board.Pass
	}

	var unknown []board.PositionIndex
	visitedSum := 0
	type known struct {
		move board.PositionIndex
		rec  *NodeRecord
	}
	var knownChildren []known

	table.withChildren(parent, candidates, func(move board.PositionIndex, rec *NodeRecord) {
		if rec == nil {
			unknown = append(unknown, move)
			return
		}
		if len(unknown) == 0 {
			visitedSum += rec.Visits()
		}
		knownChildren = append(knownChildren, known{move: move, rec: rec})
	})

	if len(unknown) > 0 {
		return unknown[workerID%len(unknown)]
	}

	found := false
	best := board.Pass
	bestScore := math.Inf(-1)
	for _, kc := range knownChildren {
		if kc.rec.InSearch() {
			continue
		}
		score := ucb(kc.rec, visitedSum, exploration)
		if !found || score > bestScore {
			found = true
			bestScore = score
			best = kc.move
		}
	}
	return best
}

// bestChild returns the move out of parent's non-suicidal legal moves whose
// child node has the greatest visit count, ties won by whichever move is
// seen first. Every such move must already have a NodeRecord; a missing
// one means the search budget was too small for the branching factor, a
// precondition violation (§7) - suicide candidates are never selected by
// the worker loop in the first place, so they are excluded here rather
// than tripping that same panic for an unrelated reason.
func bestChild(table *TranspositionTable, parent board.Board) board.PositionIndex {
	legal := parent.PlayableIndexes(parent.NextSide())
	if len(legal) == 0 {
		panic("search: bestChild called on a board with no legal moves")
	}

	best := board.Pass
	maxVisits := -1
	considered := 0
	for _, move := range legal {
		if parent.IsSuicide(move) {
			continue
		}
		considered++
		rec, ok := table.GetChild(parent, move)
		if !ok {
			panic(fmt.Sprintf("search: no node record for legal root move %d - search budget was under-provisioned", move))
		}
		if rec.Visits() > maxVisits {
			maxVisits = rec.Visits()
			best = move
		}
	}
	if considered == 0 {
		return board.Pass
	}
	return best
}
