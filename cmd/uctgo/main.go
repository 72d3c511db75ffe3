// Command uctgo plays a single UCT-chosen move against a board it prints
// to stdout, handling the forced-pass case before ever calling into the
// search core.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"weiqi/board"
	"weiqi/search"
	"weiqi/utils"
)

func main() {
	var (
		size            = flag.Int("size", 9, "board side length")
		seed            = flag.Uint64("seed", 1, "playout RNG seed")
		playoutsPerMove = flag.Int("playouts", 4000, "target MC playouts per move")
		threadCount     = flag.Int("threads", 8, "parallel search goroutines")
		debug           = flag.Bool("debug", false, "enable debug-level logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	b := board.New(*size)
	side := b.NextSide()

	hasLegal := false
	for _, m := range b.PlayableIndexes(side) {
		if !b.IsSuicide(m) {
			hasLegal = true
			break
		}
	}
	if !hasLegal {
		log.Info().Msg("no legal move, passing")
		b = b.Pass()
		printBoard(b)
		return
	}

	player, err := search.NewUctPlayer(*seed, *playoutsPerMove, *threadCount, search.WithLogger(log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct search")
	}

	move := player.NextMove(b)
	if utils.FindIndex(b.PlayableIndexes(side), move) < 0 {
		log.Fatal().Int("move", int(move)).Msg("search returned a move outside the legal set")
	}
	b = b.Play(move)

	log.Info().Int("move", int(move)).Str("side", side.String()).Msg("move chosen")
	printBoard(b)
}

func printBoard(b board.Board) {
	os.Stdout.WriteString(b.String())
}
