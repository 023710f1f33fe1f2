package service

import (
	"context"
	"io"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// Player produces moves for one side of the game.
type Player interface {
	Move(ctx context.Context, board entity.Board) (entity.Coordinate, error)
	Mark() entity.Mark
	Kind() string
}

// NewPlayer builds the player for a kind returned by entity.ParseKind.
func NewPlayer(kind string, mark entity.Mark, in LineReader, out io.Writer) Player {
	if kind == entity.KindHuman {
		return NewHumanPlayer(mark, in, out)
	}

	return NewBotPlayer(mark)
}
