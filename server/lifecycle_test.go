package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zucenko/hungry/model"
)

func TestStartGameIgnoresWrongSecret(t *testing.T) {
	g := newTestGame(t, testConfig())
	join(t, g, "a")

	require.NoError(t, g.StartGame(2, 2, "nope", 0))
	require.Equal(t, Joining, g.CurrentPhase())
	require.Empty(t, g.GetBoardState())
}

func TestStartGameRejectsBadDimensions(t *testing.T) {
	g := newTestGame(t, testConfig())
	require.ErrorIs(t, g.StartGame(0, 3, testSecret, 0), ErrInvalidDimensions)
	require.ErrorIs(t, g.StartGame(3, -1, testSecret, 0), ErrInvalidDimensions)
	require.Equal(t, Joining, g.CurrentPhase())
}

func TestStartGameCapacity(t *testing.T) {
	g := newTestGame(t, testConfig())
	join(t, g, "a", "b", "c")

	err := g.StartGame(1, 2, testSecret, 0)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.Equal(t, Joining, g.CurrentPhase())
	require.Len(t, g.PlayersByScoreDescending(), 3)

	start(t, g, 1, 3)
	require.Len(t, g.GetBoardState(), 3)
}

func TestStartGameSeatsEveryPlayer(t *testing.T) {
	g := newTestGame(t, testConfig())
	tokens := join(t, g, "a", "b", "c", "d")
	start(t, g, 2, 2)

	for _, token := range tokens {
		l, ok := locationOf(t, g, token)
		require.True(t, ok)
		require.False(t, cellAt(t, g, l).IsPillAvailable)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	require.Zero(t, g.board.PillCount())
	require.Equal(t, 4, g.pills.remaining())
}

func TestStartGameOnlyFromJoining(t *testing.T) {
	g := newTestGame(t, testConfig(), 0, 0)
	tokens := join(t, g, "a")
	start(t, g, 1, 2)

	require.NoError(t, g.StartGame(5, 5, testSecret, 0))
	require.Equal(t, Eating, g.CurrentPhase())
	require.Len(t, g.GetBoardState(), 2)

	_, err := g.Move(tokens[0], model.Right)
	require.NoError(t, err)
	require.Equal(t, GameOver, g.CurrentPhase())
	require.NoError(t, g.StartGame(5, 5, testSecret, 0))
	require.Equal(t, GameOver, g.CurrentPhase())

	g.ResetGame(testSecret)
	start(t, g, 5, 5)
	require.Len(t, g.GetBoardState(), 25)
}

func TestResetClearsScores(t *testing.T) {
	g := newTestGame(t, testConfig(), 0, 0)
	tokens := join(t, g, "a")
	start(t, g, 2, 2)
	_, err := g.Move(tokens[0], model.Right)
	require.NoError(t, err)
	require.Equal(t, 1, player(t, g, tokens[0]).Score)

	g.ResetGame("nope")
	require.Equal(t, Eating, g.CurrentPhase())

	g.ResetGame(testSecret)
	require.Equal(t, Joining, g.CurrentPhase())
	require.Zero(t, player(t, g, tokens[0]).Score)
}

func TestIdlePlayersArePrunedAtNextStart(t *testing.T) {
	g := newTestGame(t, testConfig(), 0, 0, 1, 1)
	tokens := join(t, g, "mover", "idle")
	start(t, g, 2, 2)

	_, err := g.Move(tokens[0], model.Right)
	require.NoError(t, err)
	g.ResetGame(testSecret)
	start(t, g, 2, 2)

	players := g.PlayersByScoreDescending()
	require.Len(t, players, 1)
	require.Equal(t, "mover", players[0].Name)
	_, err = g.Move(tokens[1], model.Up)
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestTimedRoundRestarts(t *testing.T) {
	cfg := testConfig()
	cfg.GracePeriod = 100 * time.Millisecond
	g := newTestGame(t, cfg)
	tokens := join(t, g, "a")

	require.NoError(t, g.StartGame(2, 2, testSecret, 40*time.Millisecond))
	firstEnd, ok := g.GameEndsOn()
	require.True(t, ok)
	_, err := g.Move(tokens[0], model.Right)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return g.CurrentPhase() == GameOver
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return g.CurrentPhase() == Eating
	}, time.Second, time.Millisecond)

	secondEnd, ok := g.GameEndsOn()
	require.True(t, ok)
	require.True(t, secondEnd.After(firstEnd))
	require.Zero(t, player(t, g, tokens[0]).Score)
	_, seated := locationOf(t, g, tokens[0])
	require.True(t, seated)
	rows, cols := g.Dimensions()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
}

func TestResetDisarmsTimer(t *testing.T) {
	g := newTestGame(t, testConfig())
	join(t, g, "a")
	require.NoError(t, g.StartGame(2, 2, testSecret, 30*time.Millisecond))

	g.ResetGame(testSecret)
	_, ok := g.GameEndsOn()
	require.False(t, ok)

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, Joining, g.CurrentPhase())
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g, err := NewGame(testConfig(), WithLogger(quietLogger()), WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	t.Cleanup(g.Close)

	_, ok := g.TimeRemaining()
	require.False(t, ok)

	require.NoError(t, g.StartGame(2, 2, testSecret, 10*time.Minute))
	left, ok := g.TimeRemaining()
	require.True(t, ok)
	require.Equal(t, 10*time.Minute, left)

	now = now.Add(4 * time.Minute)
	left, _ = g.TimeRemaining()
	require.Equal(t, 6*time.Minute, left)
}

func TestChangesAreNotified(t *testing.T) {
	g := newTestGame(t, testConfig())
	ch, cancel := g.Subscribe()
	defer cancel()

	join(t, g, "a")
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after join")
	}
	require.False(t, g.LastChanged().IsZero())
}

func TestStartGameRejectsOversizedBoard(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBoardCells = 12
	g := newTestGame(t, cfg)
	join(t, g, "a")

	require.ErrorIs(t, g.StartGame(5, 3, testSecret, 0), ErrInvalidDimensions)
	require.ErrorIs(t, g.StartGame(100_000, 100_000, testSecret, 0), ErrInvalidDimensions)
	require.Equal(t, Joining, g.CurrentPhase())

	start(t, g, 4, 3)
}

func TestDefaultBoardCap(t *testing.T) {
	g := newTestGame(t, testConfig())
	require.ErrorIs(t, g.StartGame(100_000, 100_000, testSecret, 0), ErrInvalidDimensions)
	require.Equal(t, Joining, g.CurrentPhase())
}
