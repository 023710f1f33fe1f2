package entity

const FieldSize = 3

type Mark rune

const (
	EmptyCell Mark = ' '
	MarkX     Mark = 'x'
	MarkO     Mark = 'o'
)

func (that Mark) String() string {
	return string(rune(that))
}

// Coordinate is a 1-indexed (row, column) pair.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coordinate) InBounds() bool {
	return that.Row >= 1 && that.Row <= FieldSize && that.Col >= 1 && that.Col <= FieldSize
}

// Board is a value copy of the grid; rows and columns are 0-indexed.
type Board [FieldSize][FieldSize]Mark

func NewBoard() Board {
	var board Board
	for i := range board {
		for j := range board[i] {
			board[i][j] = EmptyCell
		}
	}

	return board
}

func (that Board) IsFree(coord Coordinate) bool {
	if !coord.InBounds() {
		return false
	}

	return that[coord.Row-1][coord.Col-1] == EmptyCell
}

// Snapshot is what subscribers receive after every accepted move.
type Snapshot struct {
	Board Board
	Move  Coordinate
	Mark  Mark
}

type Subscriber interface {
	HandleEvent(snapshot Snapshot)
}

// Field owns the grid and notifies subscribers about each accepted move.
type Field struct {
	board       Board
	ended       bool
	subscribers []Subscriber
}

func NewField() *Field {
	return &Field{
		board: NewBoard(),
	}
}

func (that *Field) Subscribe(subscriber Subscriber) {
	that.subscribers = append(that.subscribers, subscriber)
}

func (that *Field) IsFree(coord Coordinate) bool {
	return that.board.IsFree(coord)
}

// SetMark places mark at coord. It returns false and leaves the grid
// untouched when coord is out of bounds or already taken.
func (that *Field) SetMark(coord Coordinate, mark Mark) bool {
	if !that.IsFree(coord) {
		return false
	}

	that.board[coord.Row-1][coord.Col-1] = mark

	snapshot := Snapshot{
		Board: that.board,
		Move:  coord,
		Mark:  mark,
	}
	for _, subscriber := range that.subscribers {
		subscriber.HandleEvent(snapshot)
	}

	return true
}

// CheckEnded marks the field as ended when a row, column or diagonal holds
// three equal marks. A full board without such a line does not end it.
func (that *Field) CheckEnded() bool {
	that.ended = that.Winner() != EmptyCell

	return that.ended
}

func (that *Field) Ended() bool {
	return that.ended
}

// Winner returns the mark of the first complete line, or EmptyCell.
func (that *Field) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that.cell(combo[0]), that.cell(combo[1]), that.cell(combo[2])
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that *Field) IsFull() bool {
	for _, row := range that.board {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Field) Snapshot() Board {
	return that.board
}

func (that *Field) cell(coord Coordinate) Mark {
	return that.board[coord.Row-1][coord.Col-1]
}

var WinCombos = [][3]Coordinate{
	{{1, 1}, {1, 2}, {1, 3}},
	{{2, 1}, {2, 2}, {2, 3}},
	{{3, 1}, {3, 2}, {3, 3}},
	{{1, 1}, {2, 1}, {3, 1}},
	{{1, 2}, {2, 2}, {3, 2}},
	{{1, 3}, {2, 3}, {3, 3}},
	{{1, 1}, {2, 2}, {3, 3}},
	{{1, 3}, {2, 2}, {3, 1}},
}
