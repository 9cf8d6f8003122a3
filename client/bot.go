package client

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/hungry/model"
)

var ErrStreamClosed = errors.New("watch stream closed")

// Bot chases the nearest pill while pills remain and the weakest opponent
// after that. It moves once per board update.
type Bot struct {
	c       *Client
	log     log.FieldLogger
	backoff time.Duration

	id int
	at model.Location
}

func NewBot(c *Client, cfg Config) *Bot {
	return &Bot{c: c, log: c.log, backoff: cfg.ErrorBackoff}
}

// Play runs until ctx ends or the watch stream closes. The client must
// have joined already.
func (b *Bot) Play(ctx context.Context) error {
	updates, err := b.c.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		var msg model.BoardMessage
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok = <-updates:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return ErrStreamClosed
			}
		}

		if msg.Phase != "Eating" && msg.Phase != "Battle" {
			continue
		}
		if err := b.step(ctx, msg); err != nil {
			b.log.Warnf("move failed: %v", err)
			if !b.wait(ctx) {
				return ctx.Err()
			}
		}
	}
}

func (b *Bot) step(ctx context.Context, msg model.BoardMessage) error {
	if b.id == 0 {
		b.id = OwnID(msg.Players, b.c.Name())
		if b.id == 0 {
			return nil
		}
	}
	at, seated := Locate(b.id, msg.Cells)
	if !seated {
		return nil
	}
	b.at = at

	dest, ok := AcquireTarget(b.at, msg.Cells)
	if !ok {
		return nil
	}
	d := InferDirection(b.at, dest)
	for tries := 0; tries < 4; tries++ {
		res, err := b.c.Move(ctx, d)
		if err != nil {
			return b.offBoard(err)
		}
		if res.NewLocation != b.at {
			b.at = res.NewLocation
			return nil
		}
		next := nextDirection(d)
		b.log.Debugf("Moving %v didn't work, trying %v instead", d, next)
		d = next
	}
	return nil
}

// offBoard swallows the answer for a player that was eliminated.
func (b *Bot) offBoard(err error) error {
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusBadRequest {
		return nil
	}
	return err
}

// OwnID picks the newest player registered under name, or 0.
func OwnID(players []model.RedactedPlayer, name string) int {
	id := 0
	for _, p := range players {
		if p.Name == name && p.Id > id {
			id = p.Id
		}
	}
	return id
}

// Locate finds the cell occupied by player id.
func Locate(id int, cells []model.RedactedCell) (model.Location, bool) {
	for _, c := range cells {
		if c.OccupiedBy != nil && c.OccupiedBy.Id == id {
			return c.Location, true
		}
	}
	return model.Location{}, false
}

func (b *Bot) wait(ctx context.Context) bool {
	t := time.NewTimer(b.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// AcquireTarget picks the closest pill by straight-line distance. With no
// pills left it picks the occupied cell of the lowest-scoring opponent.
func AcquireTarget(cur model.Location, cells []model.RedactedCell) (model.Location, bool) {
	var target model.Location
	found := false
	best := math.MaxFloat64
	for _, c := range cells {
		if !c.IsPillAvailable || c.Location == cur {
			continue
		}
		dr := float64(cur.Row - c.Location.Row)
		dc := float64(cur.Column - c.Location.Column)
		if d := math.Hypot(dr, dc); d < best {
			best, target, found = d, c.Location, true
		}
	}
	if found {
		return target, true
	}

	minScore := math.MaxInt
	for _, c := range cells {
		if c.OccupiedBy == nil || c.Location == cur {
			continue
		}
		if c.OccupiedBy.Score < minScore {
			minScore, target, found = c.OccupiedBy.Score, c.Location, true
		}
	}
	return target, found
}

// InferDirection closes the row gap first, then the column gap.
func InferDirection(cur, dest model.Location) model.Direction {
	switch {
	case cur.Row < dest.Row:
		return model.Down
	case cur.Row > dest.Row:
		return model.Up
	case cur.Column < dest.Column:
		return model.Right
	default:
		return model.Left
	}
}

func nextDirection(d model.Direction) model.Direction {
	switch d {
	case model.Down:
		return model.Left
	case model.Left:
		return model.Up
	case model.Up:
		return model.Right
	default:
		return model.Down
	}
}
