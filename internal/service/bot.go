package service

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type botPlayer struct {
	mark entity.Mark
}

func NewBotPlayer(mark entity.Mark) Player {
	return &botPlayer{
		mark: mark,
	}
}

// Move returns the first free cell in row-major order. It makes no attempt to win or block.
func (that *botPlayer) Move(_ context.Context, board entity.Board) (entity.Coordinate, error) {
	for row := 1; row <= entity.FieldSize; row++ {
		for col := 1; col <= entity.FieldSize; col++ {
			coord := entity.Coordinate{Row: row, Col: col}
			if board.IsFree(coord) {
				return coord, nil
			}
		}
	}

	return entity.Coordinate{}, apperror.ErrNoFreeCell
}

func (that *botPlayer) Mark() entity.Mark {
	return that.mark
}

func (that *botPlayer) Kind() string {
	return entity.KindComputer
}
