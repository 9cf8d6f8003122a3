package server

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/hungry/model"
)

const testSecret = "SECRET_CODE"

// scripted returns its values in order, then zeros.
type scripted struct {
	values []int
	i      int
}

func (s *scripted) Intn(n int) int {
	if s.i >= len(s.values) {
		return 0
	}
	v := s.values[s.i] % n
	s.i++
	return v
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SecretCode = testSecret
	cfg.NotifyInterval = 5 * time.Millisecond
	cfg.NotifyIntervalLarge = 10 * time.Millisecond
	cfg.GracePeriod = 20 * time.Millisecond
	cfg.CacheTTL = 0
	return cfg
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func newTestGame(t *testing.T, cfg Config, seats ...int) *Game {
	t.Helper()
	g, err := NewGame(cfg, WithLogger(quietLogger()), WithRandom(&scripted{values: seats}))
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func join(t *testing.T, g *Game, names ...string) []string {
	t.Helper()
	tokens := make([]string, 0, len(names))
	for _, n := range names {
		token, err := g.JoinPlayer(n)
		require.NoError(t, err)
		tokens = append(tokens, token)
	}
	return tokens
}

func start(t *testing.T, g *Game, rows, cols int) {
	t.Helper()
	require.NoError(t, g.StartGame(rows, cols, testSecret, 0))
	require.Equal(t, Eating, g.CurrentPhase())
}

func player(t *testing.T, g *Game, token string) *model.Player {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.players.lookup(token)
	require.True(t, ok)
	return p
}

func locationOf(t *testing.T, g *Game, token string) (model.Location, bool) {
	t.Helper()
	p := player(t, g, token)
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.board.Find(p)
	return c.Location, ok
}

func cellAt(t *testing.T, g *Game, l model.Location) model.Cell {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.board.Cell(l)
	require.True(t, ok)
	return c
}

func setScore(g *Game, token string, score int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, _ := g.players.lookup(token)
	p.Score = score
}
