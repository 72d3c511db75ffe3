// Package playout implements the random-policy Monte-Carlo rollout the
// search core uses to evaluate a leaf: played to terminal with uniformly
// random legal moves, never revisited.
package playout

import (
	"weiqi/board"

	"golang.org/x/exp/rand"
)

// Playout drives a single board to a terminal state using a seeded random
// policy. It is single-use: construct one per frontier a worker evaluates.
type Playout struct {
	board board.Board
	rng   *rand.Rand
}

// New returns a Playout starting from b, seeded deterministically from
// seed. Distinct seeds (or distinct call sequences against the same seeded
// source) give distinct random policies; determinism only holds per
// worker, per playout, as the core's concurrency model makes no promise
// about which worker reaches which leaf first.
func New(b board.Board, seed uint64) *Playout {
	return &Playout{
		board: b,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Run plays random legal moves, alternating sides, until the board is
// terminal. A side with no legal moves (no empty point that is neither
// suicide nor the ko point) passes.
func (p *Playout) Run() {
	for !p.board.IsEnd() {
		side := p.board.NextSide()
		legal := p.legalMoves(side)
		if len(legal) == 0 {
			p.board = p.board.Pass()
			continue
		}
		move := legal[p.rng.Intn(len(legal))]
		p.board = p.board.Play(move)
	}
}

// legalMoves returns the playable points for side that are not suicide.
func (p *Playout) legalMoves(side board.Side) []board.PositionIndex {
	candidates := p.board.PlayableIndexes(side)
	legal := make([]board.PositionIndex, 0, len(candidates))
	for _, c := range candidates {
		if !p.board.IsSuicide(c) {
			legal = append(legal, c)
		}
	}
	return legal
}

// FinalBoard returns the terminal board reached by Run. Calling it before
// Run has completed returns whatever state the playout has reached so far.
func (p *Playout) FinalBoard() board.Board {
	return p.board
}
