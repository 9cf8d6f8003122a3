package server

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/model"
)

// Game is the whole world for one server: board, players, pill supply and
// phase. Construct it once with NewGame and share it between handlers.
type Game struct {
	cfg      Config
	log      log.FieldLogger
	random   Random
	counters *Counters
	notifier *Notifier
	now      func() time.Time

	phase phaseMachine

	// mu guards everything below
	mu        sync.Mutex
	board     *model.Board
	players   registry
	pills     pillEconomy
	rows      int
	cols      int
	timeLimit time.Duration
	endsOn    time.Time
	timer     *time.Timer
	round     uint64
	closed    bool
	done      chan struct{}
}

type Option func(g *Game)

func WithLogger(l log.FieldLogger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

func WithRandom(r Random) Option {
	return func(g *Game) {
		if r != nil {
			g.random = r
		}
	}
}

func WithCounters(c *Counters) Option {
	return func(g *Game) {
		if c != nil {
			g.counters = c
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

func NewGame(cfg Config, options ...Option) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		log:      log.StandardLogger(),
		now:      time.Now,
		notifier: NewNotifier(cfg.NotifyInterval),
		players:  newRegistry(),
		done:     make(chan struct{}),
	}
	for _, option := range options {
		option(g)
	}
	if g.random == nil {
		g.random = NewRandom()
	}
	if g.counters == nil {
		c, err := NewCounters(nil)
		if err != nil {
			return nil, err
		}
		g.counters = c
	}
	return g, nil
}

// Close disarms the round timer and pending notifications.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	g.disarmTimer()
	close(g.done)
	g.notifier.Stop()
}

func (g *Game) CurrentPhase() Phase {
	return g.phase.Read()
}

// Dimensions of the current (or last) round.
func (g *Game) Dimensions() (rows, cols int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rows, g.cols
}

// GameEndsOn is set only while a timed round is armed.
func (g *Game) GameEndsOn() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.endsOn, !g.endsOn.IsZero()
}

// TimeInfo reports the armed deadline and the seconds left on the game clock.
func (g *Game) TimeInfo() model.TimeInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	var info model.TimeInfo
	if g.endsOn.IsZero() {
		return info
	}
	endsOn := g.endsOn
	remaining := endsOn.Sub(g.now()).Seconds()
	info.GameEndsOn = &endsOn
	info.SecondsRemaining = &remaining
	return info
}

func (g *Game) TimeRemaining() (time.Duration, bool) {
	endsOn, ok := g.GameEndsOn()
	if !ok {
		return 0, false
	}
	return endsOn.Sub(g.now()), true
}

// Subscribe receives coalesced change notifications.
func (g *Game) Subscribe() (<-chan struct{}, func()) {
	return g.notifier.Subscribe()
}

func (g *Game) LastChanged() time.Time {
	return g.notifier.LastChanged()
}

func (g *Game) changed() {
	g.notifier.Changed()
}
