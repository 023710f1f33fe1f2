package view

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const rowSeparator = "-------"

// Console draws the board to a writer after every accepted move.
type Console struct {
	logger *slog.Logger
	out    io.Writer
}

func NewConsole(logger *slog.Logger, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "view"),
		out:    out,
	}
}

func (that *Console) HandleEvent(snapshot entity.Snapshot) {
	if _, err := io.WriteString(that.out, Render(snapshot.Board)); err != nil {
		that.logger.Error("failed to render board", "error", err)
	}
}

// Render returns the ASCII grid followed by two blank lines.
func Render(board entity.Board) string {
	var sb strings.Builder

	sb.WriteString(rowSeparator + "\n")
	for _, row := range board {
		sb.WriteString("|")
		for _, cell := range row {
			fmt.Fprintf(&sb, "%c|", cell)
		}
		sb.WriteString("\n" + rowSeparator + "\n")
	}
	sb.WriteString("\n\n")

	return sb.String()
}
