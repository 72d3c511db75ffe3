// Command uctbench runs the same self-play game across a range of thread
// counts and reports how search time scales, the Go-engine analogue of the
// corpus's speedup experiment. Results are persisted to CSV via the bench
// package.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"weiqi/bench"
	"weiqi/board"
	"weiqi/engine"
	"weiqi/search"
)

type config struct {
	threadCount int
}

func main() {
	var (
		size            = flag.Int("size", 5, "board side length")
		playoutsPerMove = flag.Int("playouts", 200, "target MC playouts per move")
		games           = flag.Int("games", 3, "self-play games per thread count")
		outDir          = flag.String("out", ".", "directory under which to write bench results")
	)
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	writer, err := bench.NewWriter(*outDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bench writer")
	}

	configs := []config{
		{threadCount: 1},
		{threadCount: 2},
		{threadCount: 4},
		{threadCount: 8},
	}

	var gameRecords []bench.GameRecord
	var moveRecords []bench.MoveRecord

	fmt.Println("Running speedup experiment...")
	gameID := 0
	for _, cfg := range configs {
		var total time.Duration
		for i := 0; i < *games; i++ {
			gameID++
			final, history, elapsed := runGame(cfg, *size, *playoutsPerMove)
			total += elapsed

			gameRecords = append(gameRecords, bench.GameRecord{
				ID:          gameID,
				ThreadCount: cfg.threadCount,
				BoardSize:   *size,
				Duration:    elapsed,
				MoveCount:   len(history),
				BlackRegion: final.BlackRegion(),
			})
			for _, mv := range history {
				moveRecords = append(moveRecords, bench.MoveRecord{
					Game:     gameID,
					Ply:      mv.Ply,
					Side:     mv.Side.String(),
					Move:     int(mv.Move),
					Duration: mv.Elapsed,
				})
			}
		}
		avg := total / time.Duration(*games)
		fmt.Printf("threads=%d: avg game duration=%s\n", cfg.threadCount, avg)
	}
	fmt.Println("Finished speedup experiment.")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write move records")
	}
}

func runGame(cfg config, size, playoutsPerMove int) (board.Board, []engine.MoveRecord, time.Duration) {
	black, err := search.NewUctPlayer(1, playoutsPerMove, cfg.threadCount)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct black")
	}
	white, err := search.NewUctPlayer(2, playoutsPerMove, cfg.threadCount)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct white")
	}

	game := engine.NewSelfPlay(black, white)
	start := time.Now()
	final, history := game.Run(board.New(size))
	return final, history, time.Since(start)
}
