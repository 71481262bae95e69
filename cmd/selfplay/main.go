// Command selfplay is a thin smoke-test harness exercising
// Engine.GetMoveWithStats in a self-play loop, mirroring the teacher's
// cmd/chessplay-uci wrapper shape (flags -> construct engine -> loop)
// without any protocol framing: this core defines its own external
// interface directly (spec.md section 6), not UCI.
package main

import (
	"flag"
	"log"

	"ninukicore/internal/board"
	"ninukicore/internal/engine"
)

var (
	ttMB     = flag.Int("tt", 16, "transposition table size in MB")
	maxDepth = flag.Int("maxdepth", 40, "maximum search depth")
	softMs   = flag.Int("budget", 500, "soft time budget per move, in ms")
	maxMoves = flag.Int("moves", 80, "maximum plies before the game is declared a draw")
)

func main() {
	flag.Parse()

	eng := engine.NewEngine(*ttMB, *maxDepth, *softMs)
	var b board.Board
	side := board.Black

	for ply := 1; ply <= *maxMoves; ply++ {
		stats, ok := eng.GetMoveWithStats(&b, side)
		if !ok {
			log.Printf("ply %d: %s has no legal move, game over", ply, side)
			break
		}
		log.Printf("ply %d: %s plays %s  %s", ply, side, stats.Move, stats)

		b.PlaceStone(stats.Move, side)
		rec := board.ExecuteCaptures(&b, stats.Move, side)
		_ = rec

		if winner, won := board.CheckWinner(&b, stats.Move, side); won {
			log.Printf("ply %d: %s wins", ply, winner)
			break
		}
		side = side.Opponent()
	}
}
