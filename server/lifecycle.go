package server

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/model"
)

// StartGame begins a round while players are joining. A wrong secret or a
// round already running is ignored without error. A positive timeLimit ends
// the round after that long and then restarts it on the same board size.
func (g *Game) StartGame(rows, cols int, secret string, timeLimit time.Duration) error {
	if secret != g.cfg.SecretCode || g.phase.Read() != Joining {
		return nil
	}
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidDimensions)
	}
	if limit := g.cfg.MaxBoardCells; limit > 0 && rows > limit/cols {
		return fmt.Errorf("%dx%d exceeds %d cells: %w", rows, cols, g.cfg.MaxBoardCells, ErrInvalidDimensions)
	}

	g.mu.Lock()
	if g.closed || g.phase.Read() != Joining {
		g.mu.Unlock()
		return nil
	}
	if err := g.initialize(rows, cols); err != nil {
		g.mu.Unlock()
		return err
	}
	g.rows, g.cols = rows, cols
	g.timeLimit = timeLimit
	if timeLimit > 0 {
		g.armTimer()
	}
	g.mu.Unlock()

	g.log.WithFields(log.Fields{"rows": rows, "cols": cols, "timeLimit": timeLimit}).Info("game started")
	g.changed()
	return nil
}

// ResetGame returns to Joining and clears scores. The board is left as is.
func (g *Game) ResetGame(secret string) {
	if secret != g.cfg.SecretCode || g.phase.Read() == Joining {
		return
	}

	g.mu.Lock()
	g.disarmTimer()
	g.players.resetScores()
	prev := g.phase.toJoining()
	g.mu.Unlock()

	g.log.Infof("game reset from %v", prev)
	g.changed()
}

// initialize lays out a fresh round. Callers hold mu.
func (g *Game) initialize(rows, cols int) error {
	if n := g.players.len(); n > rows*cols {
		return fmt.Errorf("%d players on %dx%d: %w", n, rows, cols, ErrCapacityExceeded)
	}

	for _, p := range g.players.pruneInactive() {
		g.log.WithField("player", p.Id).Infof("dropping %s, no moves last round", p.Name)
	}

	board := model.NewBoard(rows, cols)
	if err := seatAll(board, g.players.all(), g.random); err != nil {
		return err
	}
	g.players.resetScores()
	g.pills.refill(rows, cols)
	g.board = board
	g.notifier.SetInterval(g.cfg.notifyInterval(g.players.len(), g.pills.remaining()))

	if !g.phase.toEating() {
		return fmt.Errorf("cannot start round from %v", g.phase.Read())
	}
	return nil
}

// armTimer schedules the end of the current round. Callers hold mu.
func (g *Game) armTimer() {
	g.round++
	round := g.round
	g.endsOn = g.now().Add(g.timeLimit)
	g.timer = time.AfterFunc(g.timeLimit, func() {
		g.roundExpired(round)
	})
}

// disarmTimer also invalidates a callback that already fired. Callers hold mu.
func (g *Game) disarmTimer() {
	g.round++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.endsOn = time.Time{}
}

func (g *Game) roundExpired(round uint64) {
	g.mu.Lock()
	if round != g.round {
		g.mu.Unlock()
		return
	}
	g.log.Info("Timer ran out. Game over.")
	if g.phase.Read() != Joining {
		g.phase.toGameOver()
	}
	g.mu.Unlock()
	g.changed()

	select {
	case <-time.After(g.cfg.GracePeriod):
	case <-g.done:
		return
	}

	g.mu.Lock()
	defer g.changed()
	defer g.mu.Unlock()
	if round != g.round {
		return
	}
	g.players.resetScores()
	if err := g.initialize(g.rows, g.cols); err != nil {
		g.log.Errorf("cannot restart round: %v", err)
		g.disarmTimer()
		g.phase.toJoining()
		return
	}
	g.armTimer()
	g.log.WithField("endsOn", g.endsOn).Info("new round started")
}
