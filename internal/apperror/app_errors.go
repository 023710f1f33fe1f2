package apperror

import "errors"

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrInputFormat = errors.New("invalid input format")
	ErrNoFreeCell  = errors.New("no free cell left")
	ErrNoSuccessor = errors.New("permutation has no successor")
	ErrGameEnded   = errors.New("game is already ended")
)
