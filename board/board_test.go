package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardEmpty(t *testing.T) {
	b := New(3)

	require.Equal(t, Black, b.NextSide(), "black moves first")
	require.Equal(t, 9, len(b.PlayableIndexes(Black)), "every point is playable on an empty board")
	require.False(t, b.IsEnd())
}

func TestPlayTogglesSideAndOccupies(t *testing.T) {
	b := New(3)

	next := b.Play(PositionIndex(4))

	require.Equal(t, Black, next.At(PositionIndex(4)))
	require.Equal(t, White, next.NextSide())
	require.Equal(t, Black, next.LastSide())
	require.Len(t, next.PlayableIndexes(White), 8)
}

func TestPlayDoesNotMutateReceiver(t *testing.T) {
	b := New(3)

	_ = b.Play(PositionIndex(0))

	require.Equal(t, None, b.At(PositionIndex(0)), "original board must be unchanged")
	require.Equal(t, Black, b.NextSide())
}

func TestPassTwiceEndsGame(t *testing.T) {
	b := New(3)

	b = b.Pass()
	require.False(t, b.IsEnd())
	b = b.Pass()
	require.True(t, b.IsEnd())
}

func TestCaptureRemovesSurroundedGroup(t *testing.T) {
	// Board:
	// .X.
	// XOX
	// .X.
	// White's lone stone at center (idx 4) is surrounded on all four sides
	// by Black; Black's final move fills the last liberty and captures it.
	b := New(3)
	b = b.Play(1) // Black: top
	b = b.Play(4) // White: center
	b = b.Play(3) // Black: left
	b = b.Pass()  // White passes (every other point would be suicide)
	b = b.Play(5) // Black: right
	b = b.Pass()  // White passes
	b = b.Play(7) // Black: bottom, captures center

	require.Equal(t, None, b.At(PositionIndex(4)), "captured stone is removed")
	require.Equal(t, Black, b.At(PositionIndex(7)))
}

func TestSuicideIsDetected(t *testing.T) {
	// Black stones surround point 4 on all four sides; White has no stones
	// there yet, so White playing at 4 would capture nothing and leave
	// itself with zero liberties: suicide.
	b := New(3)
	b = b.Play(1) // Black
	b = b.Play(0) // White (irrelevant)
	b = b.Play(3) // Black
	b = b.Play(6) // White (irrelevant)
	b = b.Play(5) // Black
	b = b.Play(8) // White (irrelevant)
	b = b.Play(7) // Black completes surrounding ring around 4

	require.True(t, b.IsSuicide(PositionIndex(4)))
}

func TestKeyEqualForIdenticalStates(t *testing.T) {
	a := New(5).Play(PositionIndex(6)).Play(PositionIndex(12))
	c := New(5).Play(PositionIndex(6)).Play(PositionIndex(12))

	require.Equal(t, a.Key(), c.Key())
}

func TestKeyDiffersForDifferentStates(t *testing.T) {
	a := New(5).Play(PositionIndex(6))
	c := New(5).Play(PositionIndex(7))

	require.NotEqual(t, a.Key(), c.Key())
}
