// Package board implements a small, self-contained Go position: stones,
// legal-move enumeration, suicide/ko checking, simple area scoring, and the
// canonical key the search package's transposition table indexes on.
//
// Board values are immutable by convention: Play and Pass always return a
// new Board, never mutate the receiver, so a Board can be freely shared
// across goroutines without synchronization.
package board

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/OneOfOne/xxhash"
)

// Side identifies which color is to move, or which color a point belongs to.
type Side int8

const (
	None  Side = 0
	Black Side = 1
	White Side = 2
)

func (s Side) Opposite() Side {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

func (s Side) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// PositionIndex encodes a point on the board as row*Size+col, or the PASS
// sentinel for a pass move.
type PositionIndex int

const Pass PositionIndex = -1

// BoardKey is the canonical, hashable identity of a Board for use as a
// transposition table key.
type BoardKey uint64

// maxGameLenFactor bounds how long a single line of play may run before a
// board is forced terminal (after size*size*maxGameLenFactor moves),
// guarding playouts against pathological cycles.
// Mirrors the N*N*3 budget used elsewhere in the Go-engine corpus.
const maxGameLenFactor = 3

// Board is a Size x Size Go position.
type Board struct {
	size              int
	stones            []Side
	toMove            Side
	koPoint           PositionIndex
	consecutivePasses int
	moveCount         int
}

// New returns an empty board of the given side length with Black to move.
func New(size int) Board {
	if size < 1 {
		panic(fmt.Sprintf("board: invalid size %d", size))
	}
	return Board{
		size:    size,
		stones:  make([]Side, size*size),
		toMove:  Black,
		koPoint: Pass,
	}
}

// SideLength returns the board's side length N (area is N*N).
func (b Board) SideLength() int { return b.size }

// NextSide returns the side to move.
func (b Board) NextSide() Side { return b.toMove }

// LastSide returns the side that played the most recent move or pass.
// Undefined (returns None) on a fresh board with no history.
func (b Board) LastSide() Side {
	if b.moveCount == 0 {
		return None
	}
	return b.toMove.Opposite()
}

// At returns the occupant of a point, or None if empty.
func (b Board) At(p PositionIndex) Side {
	b.mustOnBoard(p)
	return b.stones[p]
}

func (b Board) mustOnBoard(p PositionIndex) {
	if p < 0 || int(p) >= len(b.stones) {
		panic(fmt.Sprintf("board: position %d out of range for size %d", p, b.size))
	}
}

func (b Board) row(p PositionIndex) int { return int(p) / b.size }
func (b Board) col(p PositionIndex) int { return int(p) % b.size }

func (b Board) indexOf(row, col int) (PositionIndex, bool) {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return 0, false
	}
	return PositionIndex(row*b.size + col), true
}

// neighbors returns the orthogonal neighbors of p that lie on the board.
func (b Board) neighbors(p PositionIndex) []PositionIndex {
	row, col := b.row(p), b.col(p)
	out := make([]PositionIndex, 0, 4)
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, d := range deltas {
		if idx, ok := b.indexOf(row+d[0], col+d[1]); ok {
			out = append(out, idx)
		}
	}
	return out
}

// IsEnd reports whether the position is terminal: two consecutive passes,
// or the game has run past its length budget.
func (b Board) IsEnd() bool {
	if b.consecutivePasses >= 2 {
		return true
	}
	return b.moveCount >= b.size*b.size*maxGameLenFactor
}

// PlayableIndexes returns every empty point on the board. Suicide and ko
// legality are checked separately by IsSuicide, matching the external
// interface this package exposes to the search core.
func (b Board) PlayableIndexes(side Side) []PositionIndex {
	_ = side // legality here is occupancy-only; side matters only for IsSuicide
	out := make([]PositionIndex, 0, len(b.stones))
	for i, occ := range b.stones {
		if occ == None {
			out = append(out, PositionIndex(i))
		}
	}
	return out
}

// IsSuicide reports whether playing move for the side to move is illegal:
// either it leaves the played stone's group with no liberties after
// resolving captures, or it immediately retakes the simple-ko point.
func (b Board) IsSuicide(move PositionIndex) bool {
	if move == Pass {
		return false
	}
	if move == b.koPoint {
		return true
	}
	_, ok := b.tryPlay(move)
	return !ok
}

// Play plays move for the side to move and returns the resulting board.
// Panics if the move is occupied or would be a suicide/ko violation -
// callers (the selection policy) are required to filter those out first.
func (b Board) Play(move PositionIndex) Board {
	if move == Pass {
		return b.Pass()
	}
	if move == b.koPoint {
		panic(fmt.Sprintf("board: move %d for %s retakes the ko point", move, b.toMove))
	}
	next, ok := b.tryPlay(move)
	if !ok {
		panic(fmt.Sprintf("board: illegal move %d for %s", move, b.toMove))
	}
	return next
}

// Pass returns the board after the side to move passes.
func (b Board) Pass() Board {
	next := b.clone()
	next.toMove = b.toMove.Opposite()
	next.koPoint = Pass
	next.consecutivePasses = b.consecutivePasses + 1
	next.moveCount = b.moveCount + 1
	return next
}

func (b Board) clone() Board {
	stones := make([]Side, len(b.stones))
	copy(stones, b.stones)
	return Board{
		size:              b.size,
		stones:            stones,
		toMove:            b.toMove,
		koPoint:           b.koPoint,
		consecutivePasses: b.consecutivePasses,
		moveCount:         b.moveCount,
	}
}

// tryPlay attempts to play move for the side to move without mutating b. It
// returns the resulting board and true on success, or the zero value and
// false if the move is occupied or a suicide.
func (b Board) tryPlay(move PositionIndex) (Board, bool) {
	b.mustOnBoard(move)
	if b.stones[move] != None {
		return Board{}, false
	}

	mover := b.toMove
	opponent := mover.Opposite()

	next := b.clone()
	next.stones[move] = mover

	captured := 0
	var capturedSingle PositionIndex = Pass
	for _, nb := range next.neighbors(move) {
		if next.stones[nb] != opponent {
			continue
		}
		group, liberties := next.groupLiberties(nb)
		if liberties == 0 {
			for _, g := range group {
				next.stones[g] = None
			}
			captured += len(group)
			if len(group) == 1 {
				capturedSingle = group[0]
			}
		}
	}

	group, liberties := next.groupLiberties(move)
	if liberties == 0 {
		return Board{}, false
	}

	next.toMove = opponent
	next.consecutivePasses = 0
	next.moveCount = b.moveCount + 1
	next.koPoint = Pass
	if captured == 1 && len(group) == 1 {
		next.koPoint = capturedSingle
	}
	return next, true
}

// groupLiberties returns every stone connected to p (same color, orthogonal
// connectivity) and the number of distinct empty points adjacent to that
// group.
func (b Board) groupLiberties(p PositionIndex) ([]PositionIndex, int) {
	color := b.stones[p]
	visited := map[PositionIndex]bool{p: true}
	liberties := map[PositionIndex]bool{}
	stack := []PositionIndex{p}
	group := []PositionIndex{p}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range b.neighbors(cur) {
			switch b.stones[nb] {
			case None:
				liberties[nb] = true
			case color:
				if !visited[nb] {
					visited[nb] = true
					group = append(group, nb)
					stack = append(stack, nb)
				}
			}
		}
	}
	return group, len(liberties)
}

// Key returns the canonical transposition-table hash for this board: same
// stones, same side to move, same ko point hash equal. This is a hash, not
// an encoding - two boards with different ko points on a board small enough
// that a single byte would suffice still cannot collide here (the ko point
// occupies a full uint32, never truncated to fit the board's stone count),
// but, being a 64-bit hash, it carries the usual small chance of unrelated
// boards colliding; Equals resolves that.
func (b Board) Key() BoardKey {
	buf := make([]byte, len(b.stones)+1+4)
	for i, s := range b.stones {
		buf[i] = byte(s)
	}
	buf[len(b.stones)] = byte(b.toMove)
	binary.LittleEndian.PutUint32(buf[len(b.stones)+1:], uint32(b.koPoint+1)) // shift so PASS (-1) stays non-negative
	return BoardKey(xxhash.Checksum64(buf))
}

// Equals reports whether b and other have the same stones, same side to
// move, and same simple-ko point - the structural equality TranspositionTable
// falls back on to resolve a Key collision between otherwise-distinct
// boards.
func (b Board) Equals(other Board) bool {
	if b.size != other.size || b.toMove != other.toMove || b.koPoint != other.koPoint {
		return false
	}
	for i, s := range b.stones {
		if other.stones[i] != s {
			return false
		}
	}
	return true
}

// String renders the board for logging/debugging, '.' empty, 'X' black,
// 'O' white.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			idx, _ := b.indexOf(row, col)
			switch b.stones[idx] {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
