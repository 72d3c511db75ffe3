// Package engine drives a full game between two UctPlayer instances (or one
// playing against itself), handling the forced-pass case the search core
// itself refuses to enter.
package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"weiqi/board"
	"weiqi/search"
)

// MaxMoves bounds a self-play game independent of board.Board's own
// move-count cap, mirroring the corpus's habit of a belt-and-suspenders
// turn limit around a game loop.
const MaxMoves = 10000

// MoveRecord is one ply of a completed self-play game.
type MoveRecord struct {
	Ply     int
	Side    board.Side
	Move    board.PositionIndex
	Elapsed time.Duration
}

// SelfPlay runs black and white to a terminal board, alternately asking
// each player for its move. A side with no legal move passes without
// consulting its player, honoring the core's precondition that NextMove is
// never called on a board with zero legal moves (§7).
type SelfPlay struct {
	Black *search.UctPlayer
	White *search.UctPlayer
}

// NewSelfPlay pairs two already-configured players into one game driver.
func NewSelfPlay(black, white *search.UctPlayer) *SelfPlay {
	return &SelfPlay{Black: black, White: white}
}

// Run plays from root to a terminal board and returns the final board plus
// the move history.
func (s *SelfPlay) Run(root board.Board) (board.Board, []MoveRecord) {
	b := root
	history := make([]MoveRecord, 0, 64)

	for ply := 0; !b.IsEnd() && ply < MaxMoves; ply++ {
		side := b.NextSide()
		player := s.Black
		if side == board.White {
			player = s.White
		}

		start := time.Now()
		var move board.PositionIndex
		hasLegal := false
		for _, m := range b.PlayableIndexes(side) {
			if !b.IsSuicide(m) {
				hasLegal = true
				break
			}
		}
		if !hasLegal {
			move = board.Pass
			b = b.Pass()
		} else {
			move = player.NextMove(b)
			b = b.Play(move)
		}

		history = append(history, MoveRecord{
			Ply:     ply,
			Side:    side,
			Move:    move,
			Elapsed: time.Since(start),
		})
		log.Debug().
			Int("ply", ply).
			Str("side", side.String()).
			Int("move", int(move)).
			Dur("elapsed", time.Since(start)).
			Msg("self-play move")
	}

	log.Info().
		Int("moves", len(history)).
		Int("black_region", b.BlackRegion()).
		Msg("self-play game finished")

	return b, history
}
