package server

import (
	"fmt"

	"github.com/zucenko/hungry/model"
)

// seatAll places players in order at round start. Each starts from a random
// cell; on a conflict the candidate walks one row down, then one column right,
// alternating and wrapping at the edges. A player's seat is never a pill.
func seatAll(b *model.Board, players []*model.Player, rnd Random) error {
	if len(players) > b.Rows*b.Cols {
		return fmt.Errorf("%d players on %dx%d: %w", len(players), b.Rows, b.Cols, ErrCapacityExceeded)
	}
	for _, p := range players {
		l, err := probe(b, rnd)
		if err != nil {
			return err
		}
		b.Replace(model.Cell{Location: l, OccupiedBy: p})
	}
	return nil
}

func probe(b *model.Board, rnd Random) (model.Location, error) {
	l := model.Location{Row: rnd.Intn(b.Rows), Column: rnd.Intn(b.Cols)}
	byRow := true
	// (row, col, axis) has 2*rows*cols states, so the walk has cycled by then
	limit := 2 * b.Rows * b.Cols
	for probes := 0; occupied(b, l); probes++ {
		if probes >= limit {
			return randomFree(b, rnd)
		}
		if byRow {
			l.Row = (l.Row + 1) % b.Rows
		} else {
			l.Column = (l.Column + 1) % b.Cols
		}
		byRow = !byRow
	}
	return l, nil
}

func occupied(b *model.Board, l model.Location) bool {
	c, _ := b.Cell(l)
	return c.OccupiedBy != nil
}

// randomFree picks uniformly among unoccupied cells; used for mid-round joins.
func randomFree(b *model.Board, rnd Random) (model.Location, error) {
	free := b.Free()
	if len(free) == 0 {
		return model.Location{}, ErrNoAvailableSpace
	}
	return free[rnd.Intn(len(free))], nil
}
