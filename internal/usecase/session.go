package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-console/internal/view"
)

const selectPrompt = "Please, select players: Human(h) or Bot(b)\n" +
	"How to: \"<first player><whitespace><second player>\"\n"

type State int

const (
	StateSelectingPlayers State = iota
	StateTurn
	StateEnded
)

func (that State) String() string {
	switch that {
	case StateSelectingPlayers:
		return "selecting_players"
	case StateTurn:
		return "turn"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Stats(ctx context.Context) (map[string]int64, error)
}

// Session runs one game from player selection to the final board.
type Session struct {
	logger *slog.Logger

	in  service.LineReader
	out io.Writer

	controller *tictactoe.GameController
	results    resultRepo

	state State
}

// NewSession builds a session reading from in and writing to out. results may be nil, which disables the scoreboard.
func NewSession(logger *slog.Logger, in service.LineReader, out io.Writer, results resultRepo) *Session {
	return &Session{
		logger:     logger.With("component", "session"),
		in:         in,
		out:        out,
		controller: tictactoe.NewGameController(),
		results:    results,
		state:      StateSelectingPlayers,
	}
}

func (that *Session) State() State {
	return that.state
}

// SelectPlayers reads "<first> <second>" where "h" is a human and anything else a bot. The first player gets x.
func (that *Session) SelectPlayers() ([2]service.Player, error) {
	if _, err := fmt.Fprint(that.out, selectPrompt); err != nil {
		return [2]service.Player{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := that.in.ReadLine()
	if err != nil {
		return [2]service.Player{}, fmt.Errorf("failed to read player selection: %w", err)
	}

	tokens := strings.Fields(line)
	for len(tokens) < 2 {
		tokens = append(tokens, "")
	}

	return [2]service.Player{
		service.NewPlayer(entity.ParseKind(tokens[0]), entity.MarkX, that.in, that.out),
		service.NewPlayer(entity.ParseKind(tokens[1]), entity.MarkO, that.in, that.out),
	}, nil
}

// Run plays a full game and returns its result.
func (that *Session) Run(ctx context.Context) (*entity.Result, error) {
	log := that.logger.With("method", "Run")

	players, err := that.SelectPlayers()
	if err != nil {
		return nil, err
	}

	log.Info("players selected", "x", players[0].Kind(), "o", players[1].Kind())

	field := entity.NewField()
	field.Subscribe(view.NewConsole(that.logger, that.out))

	moves, err := that.play(ctx, field, players)
	if err != nil {
		return nil, err
	}

	result, err := that.finish(field, players, moves)
	if err != nil {
		return nil, err
	}

	that.record(ctx, result)

	return result, nil
}

func (that *Session) play(ctx context.Context, field *entity.Field, players [2]service.Player) (int, error) {
	log := that.logger.With("method", "play")

	that.setState(StateTurn)

	active, moves := 0, 0
	for !field.Ended() {
		if err := ctx.Err(); err != nil {
			return moves, fmt.Errorf("session interrupted: %w", err)
		}

		player := players[active]

		coord, err := player.Move(ctx, field.Snapshot())
		if errors.Is(err, apperror.ErrInputFormat) {
			that.report(err)
			continue
		}

		if err != nil {
			return moves, fmt.Errorf("player %s failed to move: %w", player.Mark(), err)
		}

		if err = that.controller.ApplyMove(field, coord, player.Mark()); err != nil {
			if errors.Is(err, apperror.ErrInvalidMove) {
				log.Debug("move rejected", "player", player.Mark().String(), "row", coord.Row, "col", coord.Col)
				that.report(err)
				continue
			}

			return moves, fmt.Errorf("failed to apply move: %w", err)
		}

		moves++
		log.Debug("move applied", "player", player.Mark().String(), "row", coord.Row, "col", coord.Col)

		if field.CheckEnded() || field.IsFull() {
			break
		}

		active = 1 - active
	}

	that.setState(StateEnded)

	return moves, nil
}

func (that *Session) finish(field *entity.Field, players [2]service.Player, moves int) (*entity.Result, error) {
	id, err := pkg.GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	result := &entity.Result{
		ID:         id,
		Winner:     entity.OutcomeDraw,
		Moves:      moves,
		PlayerX:    players[0].Kind(),
		PlayerO:    players[1].Kind(),
		FinishedAt: time.Now().UTC(),
	}

	if winner := field.Winner(); winner != entity.EmptyCell {
		result.Winner = winner.String()
		that.writeLine(fmt.Sprintf("Player %s wins after %d moves", winner, moves))
	} else {
		that.writeLine(fmt.Sprintf("Draw after %d moves", moves))
	}

	that.logger.Info("game finished", "id", result.ID, "winner", result.Winner, "moves", moves)

	return result, nil
}

// record stores the result and prints the totals. Scoreboard failures are logged and do not fail the game.
func (that *Session) record(ctx context.Context, result *entity.Result) {
	if that.results == nil {
		return
	}

	log := that.logger.With("method", "record", "id", result.ID)

	if err := that.results.Save(ctx, result); err != nil {
		log.Error("failed to save result", "error", err)
		return
	}

	stats, err := that.results.Stats(ctx)
	if err != nil {
		log.Error("failed to load scoreboard", "error", err)
		return
	}

	that.writeLine(FormatStats(stats))
}

// FormatStats renders the scoreboard totals in a fixed order.
func FormatStats(stats map[string]int64) string {
	return fmt.Sprintf("Scoreboard: x=%d o=%d draw=%d",
		stats[entity.MarkX.String()], stats[entity.MarkO.String()], stats[entity.OutcomeDraw])
}

func (that *Session) setState(state State) {
	that.logger.Debug("session state changed", "from", that.state.String(), "to", state.String())
	that.state = state
}

func (that *Session) report(err error) {
	that.writeLine(err.Error())
}

func (that *Session) writeLine(line string) {
	if _, err := fmt.Fprintln(that.out, line); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
