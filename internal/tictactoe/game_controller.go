package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type field interface {
	SetMark(coord entity.Coordinate, mark entity.Mark) bool
	Ended() bool
}

type GameController struct{}

func NewGameController() *GameController {
	return &GameController{}
}

// ApplyMove asks the field to place mark at coord and turns a refusal into apperror.ErrInvalidMove.
func (that *GameController) ApplyMove(gameField field, coord entity.Coordinate, mark entity.Mark) error {
	if gameField.Ended() {
		return apperror.ErrGameEnded
	}

	if !gameField.SetMark(coord, mark) {
		return fmt.Errorf("%w: cell (%d, %d) is out of bounds or occupied", apperror.ErrInvalidMove, coord.Row, coord.Col)
	}

	return nil
}
