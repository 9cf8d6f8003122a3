package server

import (
	"fmt"

	"github.com/zucenko/hungry/model"
)

// pillEconomy hands out pill values in consumption order: the nth pill eaten
// anywhere is worth n. Bonus values left at elimination sites win over the queue
// and are used once.
type pillEconomy struct {
	next, last int
	bonus      map[model.Location]int
}

func (e *pillEconomy) refill(rows, cols int) {
	e.next = 1
	e.last = rows * cols
	e.bonus = make(map[model.Location]int)
}

func (e *pillEconomy) remaining() int {
	return e.last - e.next + 1
}

func (e *pillEconomy) valueFor(l model.Location) (int, error) {
	if v, ok := e.bonus[l]; ok {
		delete(e.bonus, l)
		return v, nil
	}
	if e.next > e.last {
		return 0, fmt.Errorf("pill at %v: %w", l, ErrPillsExhausted)
	}
	v := e.next
	e.next++
	return v, nil
}

// addBonus keeps the first value placed at a location.
func (e *pillEconomy) addBonus(l model.Location, value int) {
	if e.bonus == nil {
		e.bonus = make(map[model.Location]int)
	}
	if _, exists := e.bonus[l]; exists {
		return
	}
	e.bonus[l] = value
}
