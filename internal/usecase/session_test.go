package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
	"github.com/rocketscienceinc/tictactoe-console/internal/view"
)

var errRedisDown = errors.New("redis down")

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Save(ctx context.Context, result *entity.Result) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockResultRepo) Stats(ctx context.Context) (map[string]int64, error) {
	args := that.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func newTestSession(input string, results resultRepo) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewSession(logger, service.NewLineReader(strings.NewReader(input)), out, results), out
}

func TestSession_SelectPlayers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds [2]string
	}{
		{name: "human and bot", input: "h b\n", kinds: [2]string{entity.KindHuman, entity.KindComputer}},
		{name: "bot and human", input: "b h\n", kinds: [2]string{entity.KindComputer, entity.KindHuman}},
		{name: "two humans", input: "h h\n", kinds: [2]string{entity.KindHuman, entity.KindHuman}},
		{name: "unknown tokens default to bots", input: "x y\n", kinds: [2]string{entity.KindComputer, entity.KindComputer}},
		{name: "missing second token", input: "h\n", kinds: [2]string{entity.KindHuman, entity.KindComputer}},
		{name: "empty line", input: "\n", kinds: [2]string{entity.KindComputer, entity.KindComputer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, out := newTestSession(tt.input, nil)

			players, err := session.SelectPlayers()

			require.NoError(t, err)
			assert.Equal(t, tt.kinds[0], players[0].Kind())
			assert.Equal(t, tt.kinds[1], players[1].Kind())
			assert.Equal(t, entity.MarkX, players[0].Mark())
			assert.Equal(t, entity.MarkO, players[1].Mark())
			assert.Equal(t, selectPrompt, out.String())
		})
	}

	t.Run("closed input", func(t *testing.T) {
		session, _ := newTestSession("", nil)

		_, err := session.SelectPlayers()

		require.ErrorIs(t, err, io.EOF)
	})
}

func TestSession_Run(t *testing.T) {
	t.Run("Two bots play until x wins", func(t *testing.T) {
		// Given: a session where both sides are bots
		session, out := newTestSession("b b\n", nil)

		// When: running the session
		result, err := session.Run(context.Background())

		// Then: x completes the anti-diagonal on the seventh move
		require.NoError(t, err)
		assert.Equal(t, "x", result.Winner)
		assert.Equal(t, 7, result.Moves)
		assert.Equal(t, entity.KindComputer, result.PlayerX)
		assert.Equal(t, entity.KindComputer, result.PlayerO)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, StateEnded, session.State())

		final := entity.NewBoard()
		final[0] = [3]entity.Mark{entity.MarkX, entity.MarkO, entity.MarkX}
		final[1] = [3]entity.Mark{entity.MarkO, entity.MarkX, entity.MarkO}
		final[2][0] = entity.MarkX
		assert.Contains(t, out.String(), view.Render(final))
		assert.Contains(t, out.String(), "Player x wins after 7 moves")
		assert.Equal(t, 7, strings.Count(out.String(), "|\n-------\n\n\n"))
	})

	t.Run("Human input errors are reported and the turn is retried", func(t *testing.T) {
		// Given: a human x against a bot, with one malformed line and one occupied cell
		input := "h b\n" +
			"foo\n" +
			"1 1\n" +
			"1 1\n" +
			"2 2\n" +
			"3 3\n"
		session, out := newTestSession(input, nil)

		// When: running the session
		result, err := session.Run(context.Background())

		// Then: both errors are shown and x still wins on the diagonal
		require.NoError(t, err)
		assert.Equal(t, "x", result.Winner)
		assert.Equal(t, 5, result.Moves)
		assert.Contains(t, out.String(), "invalid input format")
		assert.Contains(t, out.String(), "invalid move: cell (1, 1)")
		assert.Equal(t, 5, strings.Count(out.String(), "Enter the line and column numbers: "))
	})

	t.Run("Out-of-bounds move is retried", func(t *testing.T) {
		session, out := newTestSession("h b\n0 4\n1 1\n2 2\n3 3\n", nil)

		result, err := session.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "x", result.Winner)
		assert.Contains(t, out.String(), "invalid move: cell (0, 4)")
	})

	t.Run("Full board without a line ends in a draw", func(t *testing.T) {
		// Given: two humans filling the board without a line
		//  x o x
		//  x o o
		//  o x x
		input := "h h\n" +
			"1 1\n1 2\n1 3\n2 2\n2 1\n2 3\n3 2\n3 1\n3 3\n"
		session, out := newTestSession(input, nil)

		// When: running the session
		result, err := session.Run(context.Background())

		// Then: the game stops after nine moves as a draw
		require.NoError(t, err)
		assert.True(t, result.IsDraw())
		assert.Equal(t, 9, result.Moves)
		assert.Contains(t, out.String(), "Draw after 9 moves")
	})

	t.Run("Closed input during a human turn aborts the session", func(t *testing.T) {
		session, _ := newTestSession("h h\n1 1\n", nil)

		_, err := session.Run(context.Background())

		require.ErrorIs(t, err, io.EOF)
		assert.Equal(t, StateTurn, session.State())
	})

	t.Run("Canceled context aborts the session", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		session, _ := newTestSession("b b\n", nil)

		_, err := session.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSession_Scoreboard(t *testing.T) {
	t.Run("Result is saved and totals are printed", func(t *testing.T) {
		// Given: a scoreboard that accepts the result
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.MatchedBy(func(result *entity.Result) bool {
			return result.Winner == "x" && result.Moves == 7
		})).Return(nil).Once()
		repo.On("Stats", mock.Anything).Return(map[string]int64{"x": 3, "draw": 1}, nil).Once()

		session, out := newTestSession("b b\n", repo)

		// When: running the session
		_, err := session.Run(context.Background())

		// Then: the result is recorded and the totals shown
		require.NoError(t, err)
		repo.AssertExpectations(t)
		assert.Contains(t, out.String(), "Scoreboard: x=3 o=0 draw=1")
	})

	t.Run("Scoreboard failure does not fail the game", func(t *testing.T) {
		// Given: a scoreboard that cannot be reached
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		session, out := newTestSession("b b\n", repo)

		// When: running the session
		result, err := session.Run(context.Background())

		// Then: the game result is still returned and no totals are printed
		require.NoError(t, err)
		assert.Equal(t, "x", result.Winner)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "Stats", mock.Anything)
		assert.NotContains(t, out.String(), "Scoreboard")
	})
}

func TestFormatStats(t *testing.T) {
	assert.Equal(t, "Scoreboard: x=0 o=0 draw=0", FormatStats(map[string]int64{}))
	assert.Equal(t, "Scoreboard: x=1 o=2 draw=3", FormatStats(map[string]int64{"x": 1, "o": 2, "draw": 3}))
}
