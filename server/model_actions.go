package server

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/model"
)

// JoinPlayer registers a player and returns their token. Once a round is
// running the player is also seated on a random free cell.
func (g *Game) JoinPlayer(name string) (string, error) {
	token := uuid.NewString()
	g.log.Infof("%s wants to join", name)

	g.mu.Lock()
	var seat model.Location
	inProgress := g.phase.Read() != Joining && g.board != nil
	if inProgress {
		l, err := randomFree(g.board, g.random)
		if err != nil {
			g.mu.Unlock()
			g.log.Warnf("%s cannot join: %v", name, err)
			return "", fmt.Errorf("join %s: %w", name, err)
		}
		seat = l
	}
	p := g.players.add(name, token)
	g.players.markActive(p)
	if inProgress {
		g.board.Replace(model.Cell{Location: seat, OccupiedBy: p})
	}
	g.mu.Unlock()

	g.log.WithFields(log.Fields{"player": p.Id, "seated": inProgress}).Infof("%s joined", name)
	g.changed()
	return token, nil
}

// PlayersByScoreDescending lists every registered player, best first.
func (g *Game) PlayersByScoreDescending() []model.RedactedPlayer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players.byScoreDescending()
}

// GetBoardState is empty while players are still joining.
func (g *Game) GetBoardState() []model.RedactedCell {
	if g.phase.Read() == Joining {
		return []model.RedactedCell{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	// phase writes happen under mu, so this read is exact
	if g.board == nil || g.phase.Read() == Joining {
		return []model.RedactedCell{}
	}
	return model.RedactCells(g.board.Cells())
}

// BoardMessage is the snapshot pushed to watchers, taken in one critical section.
func (g *Game) BoardMessage() model.BoardMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	phase := g.phase.Read()
	msg := model.BoardMessage{
		Phase:   phase.String(),
		Cells:   []model.RedactedCell{},
		Players: g.players.byScoreDescending(),
	}
	if phase != Joining && g.board != nil {
		msg.Cells = model.RedactCells(g.board.Cells())
	}
	if !g.endsOn.IsZero() {
		endsOn := g.endsOn
		msg.GameEndsOn = &endsOn
	}
	return msg
}

// Move applies one step for the player holding token. Outside Eating and
// Battle the move is ignored and the current location is returned.
func (g *Game) Move(token string, d model.Direction) (model.MoveResult, error) {
	token = strings.TrimSpace(strings.ReplaceAll(token, "\"", ""))
	if token == "" {
		return model.MoveResult{}, ErrPlayerNotFound
	}

	g.mu.Lock()
	res, changed, err := g.move(token, d)
	g.mu.Unlock()

	if changed {
		g.changed()
	}
	return res, err
}

func (g *Game) move(token string, d model.Direction) (res model.MoveResult, changed bool, err error) {
	p, ok := g.players.lookup(token)
	if !ok {
		return res, false, ErrPlayerNotFound
	}
	g.players.markActive(p)

	if g.board == nil {
		return res, false, ErrInvalidMove
	}
	from, seated := g.board.Find(p)
	if !seated {
		return res, false, ErrInvalidMove
	}
	res = model.MoveResult{NewLocation: from.Location}

	phase := g.phase.Read()
	if phase != Eating && phase != Battle {
		return res, false, nil
	}

	dr, dc, ok := d.Delta()
	if !ok {
		return res, false, fmt.Errorf("%v: %w", d, ErrDirectionNotRecognized)
	}
	g.counters.direction(p, d)

	to, inBounds := g.board.Cell(model.Location{Row: from.Location.Row + dr, Column: from.Location.Column + dc})
	switch {
	case !inBounds:
		return res, false, nil
	case to.OccupiedBy == nil:
		res, err = g.movePlayer(p, from, to)
		return res, err == nil, err
	case phase == Battle:
		return g.attack(p, from.Location, to), true, nil
	default:
		return res, false, nil
	}
}

func (g *Game) movePlayer(p *model.Player, from, to model.Cell) (model.MoveResult, error) {
	ateAPill := false
	if to.IsPillAvailable {
		value, err := g.pills.valueFor(to.Location)
		if err != nil {
			g.log.WithField("player", p.Id).Errorf("cannot score pill: %v", err)
			return model.MoveResult{NewLocation: from.Location}, err
		}
		p.Score += value
		g.counters.ate(p, value)
		ateAPill = true
	}

	from.OccupiedBy = nil
	g.board.Replace(from)
	g.board.Replace(model.Cell{Location: to.Location, OccupiedBy: p})
	g.counters.moved(p)
	g.log.Infof("Moving %s from %v to %v (%v)", p.Name, from.Location, to.Location, ateAPill)

	g.endEatingIfNoPillsLeft()
	return model.MoveResult{NewLocation: to.Location, AteAPill: ateAPill}, nil
}

func (g *Game) endEatingIfNoPillsLeft() {
	if g.phase.Read() != Eating || g.board.PillCount() > 0 {
		return
	}
	if g.board.OccupiedCount() <= 1 {
		g.phase.toGameOver()
		g.log.Info("Only 1 player left, not going to battle mode - game over.")
		return
	}
	g.phase.toBattle()
	g.log.Infof("No more pills available, changing game state to %v", g.phase.Read())
}

// attack drains both players by the weaker one's score. The attacker stays
// put. Any elimination leaves half the drained amount as a bonus on the
// contested cell.
func (g *Game) attack(attacker *model.Player, attackerAt model.Location, contested model.Cell) model.MoveResult {
	defender := contested.OccupiedBy
	drained := attacker.Score
	if defender.Score < drained {
		drained = defender.Score
	}
	g.log.Infof("Player %v attacking %v", attacker, defender)
	attacker.Score -= drained
	defender.Score -= drained
	g.counters.attacked(attacker)

	eliminated := false
	if g.evictIfDead(defender) {
		eliminated = true
		g.counters.killed(attacker)
	}
	if g.evictIfDead(attacker) {
		eliminated = true
	}
	if eliminated {
		g.pills.addBonus(contested.Location, int(math.RoundToEven(float64(drained)/2)))
		g.checkForWinner()
	}
	return model.MoveResult{NewLocation: attackerAt}
}

func (g *Game) evictIfDead(p *model.Player) bool {
	if p.Score > 0 {
		return false
	}
	p.Score = 0
	c, ok := g.board.Find(p)
	if !ok {
		return false
	}
	g.log.Infof("Removing player from board: %v", p)
	g.board.Replace(model.Cell{Location: c.Location, IsPillAvailable: true})
	return true
}

// checkForWinner ends the round when at most one player is left seated. Zero
// counts too: a tie between the last two would otherwise leave Battle with
// nobody able to move.
func (g *Game) checkForWinner() {
	active := g.board.OccupiedCount()
	g.log.Infof("checking for winner: %d active players", active)
	if active <= 1 && g.phase.toGameOver() {
		g.log.Infof("Changing game state to %v", g.phase.Read())
	}
}
