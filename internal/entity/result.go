package entity

import "time"

const (
	OutcomeDraw = "draw"
)

// Result summarizes a finished session for the scoreboard.
type Result struct {
	ID         string    `json:"id"`
	Winner     string    `json:"winner"`
	Moves      int       `json:"moves"`
	PlayerX    string    `json:"player_x"`
	PlayerO    string    `json:"player_o"`
	FinishedAt time.Time `json:"finished_at"`
}

func (that *Result) IsDraw() bool {
	return that.Winner == OutcomeDraw
}

// Outcome is the scoreboard bucket this result counts towards.
func (that *Result) Outcome() string {
	if that.Winner == "" {
		return OutcomeDraw
	}

	return that.Winner
}
