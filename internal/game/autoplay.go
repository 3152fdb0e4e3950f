package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048-ai/internal/board"
)

// Player picks the next move for a board.
type Player interface {
	NextMove(ctx context.Context, b board.Board) (board.Direction, error)
}

// Options configures Autoplay.
type Options struct {
	MaxMoves int         // 0 means no limit
	Logger   *log.Logger // nil discards output
	// OnMove is called after every move that changed the board.
	OnMove func(Snapshot)
}

// Result summarizes a finished game.
type Result struct {
	Seed     int64
	Score    int
	TileSum  int
	MaxTile  int
	Moves    int
	State    board.State
	Final    board.Board
	Duration time.Duration
}

// Autoplay lets p play g until the game ends, MaxMoves is reached or
// ctx is done.
func Autoplay(ctx context.Context, g *Game, p Player, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	start := time.Now()
	for g.State() == board.Ongoing {
		if opts.MaxMoves > 0 && g.Moves() >= opts.MaxMoves {
			logger.Debug("move limit reached", "seed", g.seed, "moves", g.Moves())
			break
		}
		if err := ctx.Err(); err != nil {
			return g.result(time.Since(start)), err
		}

		d, err := p.NextMove(ctx, g.Board())
		if err != nil {
			return g.result(time.Since(start)), fmt.Errorf("game: move %d: %w", g.Moves()+1, err)
		}

		changed, err := g.Step(d)
		if err != nil {
			return g.result(time.Since(start)), err
		}
		if !changed {
			// A player that keeps choosing a no-op would never finish.
			return g.result(time.Since(start)), fmt.Errorf("game: move %d: %s does not change the board", g.Moves()+1, d)
		}
		if opts.OnMove != nil {
			opts.OnMove(g.Snapshot())
		}
	}

	res := g.result(time.Since(start))
	logger.Info("game finished",
		"seed", res.Seed,
		"state", res.State,
		"score", res.Score,
		"max_tile", res.MaxTile,
		"moves", res.Moves,
		"elapsed", res.Duration.Round(time.Millisecond),
	)
	return res, nil
}

func (g *Game) result(elapsed time.Duration) Result {
	return Result{
		Seed:     g.seed,
		Score:    g.score,
		TileSum:  g.board.Sum(),
		MaxTile:  g.board.MaxTile(),
		Moves:    g.moves,
		State:    g.State(),
		Final:    g.board,
		Duration: elapsed,
	}
}
