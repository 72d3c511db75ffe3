package engine

import (
	"testing"

	"weiqi/board"
	"weiqi/search"

	"github.com/stretchr/testify/require"
)

func TestSelfPlayReachesTerminalBoard(t *testing.T) {
	black, err := search.NewUctPlayer(1, 15, 1)
	require.NoError(t, err)
	white, err := search.NewUctPlayer(2, 15, 1)
	require.NoError(t, err)

	game := NewSelfPlay(black, white)
	final, history := game.Run(board.New(3))

	require.True(t, final.IsEnd())
	require.NotEmpty(t, history)
}

func TestSelfPlayRecordsAlternatingSides(t *testing.T) {
	black, err := search.NewUctPlayer(1, 10, 1)
	require.NoError(t, err)
	white, err := search.NewUctPlayer(2, 10, 1)
	require.NoError(t, err)

	game := NewSelfPlay(black, white)
	_, history := game.Run(board.New(3))

	require.NotEmpty(t, history)
	require.Equal(t, board.Black, history[0].Side)
	for i := 1; i < len(history); i++ {
		require.NotEqual(t, history[i-1].Side, history[i].Side,
			"consecutive moves in an uninterrupted game must alternate sides")
	}
}
