package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const movePrompt = "Enter the line and column numbers: "

// LineReader reads one line of console input at a time.
type LineReader interface {
	ReadLine() (string, error)
}

type lineReader struct {
	scanner *bufio.Scanner
}

func NewLineReader(in io.Reader) LineReader {
	return &lineReader{
		scanner: bufio.NewScanner(in),
	}
}

// ReadLine returns the next line without its terminator, or io.EOF once input is exhausted.
func (that *lineReader) ReadLine() (string, error) {
	if that.scanner.Scan() {
		return that.scanner.Text(), nil
	}

	if err := that.scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read line: %w", err)
	}

	return "", io.EOF
}

type humanPlayer struct {
	mark entity.Mark
	in   LineReader
	out  io.Writer
}

func NewHumanPlayer(mark entity.Mark, in LineReader, out io.Writer) Player {
	return &humanPlayer{
		mark: mark,
		in:   in,
		out:  out,
	}
}

// Move prompts for "<row> <col>" and parses the answer. Unparsable input
// yields apperror.ErrInputFormat so the caller can ask again.
func (that *humanPlayer) Move(ctx context.Context, _ entity.Board) (entity.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return entity.Coordinate{}, err
	}

	if _, err := fmt.Fprint(that.out, movePrompt); err != nil {
		return entity.Coordinate{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := that.in.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return entity.Coordinate{}, fmt.Errorf("player %s: input closed: %w", that.mark, err)
		}

		return entity.Coordinate{}, err
	}

	return ParseCoordinate(line)
}

func (that *humanPlayer) Mark() entity.Mark {
	return that.mark
}

func (that *humanPlayer) Kind() string {
	return entity.KindHuman
}

// ParseCoordinate parses two whitespace-separated integers. Range checks are left to the field.
func ParseCoordinate(line string) (entity.Coordinate, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entity.Coordinate{}, fmt.Errorf("%w: expected two numbers, got %q", apperror.ErrInputFormat, line)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("%w: row %q is not a number", apperror.ErrInputFormat, fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("%w: column %q is not a number", apperror.ErrInputFormat, fields[1])
	}

	return entity.Coordinate{Row: row, Col: col}, nil
}
