package model

import "fmt"

// Board is the grid of cells for one round. It is not safe for concurrent
// use; the game serializes access with its world lock.
type Board struct {
	Rows, Cols int

	cells    []Cell
	seats    map[*Player]Location
	pills    int
	occupied int
}

// NewBoard builds a rows x cols board with a pill on every cell and nobody seated.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, 0, rows*cols),
		seats: make(map[*Player]Location),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b.cells = append(b.cells, Cell{Location: Location{Row: r, Column: c}, IsPillAvailable: true})
		}
	}
	b.pills = len(b.cells)
	return b
}

func (b *Board) Contains(l Location) bool {
	return l.Row >= 0 && l.Row < b.Rows && l.Column >= 0 && l.Column < b.Cols
}

func (b *Board) index(l Location) int {
	return l.Row*b.Cols + l.Column
}

func (b *Board) Cell(l Location) (Cell, bool) {
	if !b.Contains(l) {
		return Cell{}, false
	}
	return b.cells[b.index(l)], true
}

// Replace swaps in a whole new value for the cell at c.Location.
// A player may be referenced by at most one cell, so vacate the old seat first.
func (b *Board) Replace(c Cell) {
	if !b.Contains(c.Location) {
		panic(fmt.Sprintf("board: %v outside %dx%d", c.Location, b.Rows, b.Cols))
	}
	i := b.index(c.Location)
	old := b.cells[i]
	if c.OccupiedBy != nil && c.OccupiedBy != old.OccupiedBy {
		if at, seated := b.seats[c.OccupiedBy]; seated {
			panic(fmt.Sprintf("board: %v already seated at %v", c.OccupiedBy, at))
		}
	}

	if old.IsPillAvailable {
		b.pills--
	}
	if old.OccupiedBy != nil {
		b.occupied--
		delete(b.seats, old.OccupiedBy)
	}
	if c.IsPillAvailable {
		b.pills++
	}
	if c.OccupiedBy != nil {
		b.occupied++
		b.seats[c.OccupiedBy] = c.Location
	}
	b.cells[i] = c
}

// Find returns the cell currently occupied by p.
func (b *Board) Find(p *Player) (Cell, bool) {
	l, ok := b.seats[p]
	if !ok {
		return Cell{}, false
	}
	return b.cells[b.index(l)], true
}

func (b *Board) PillCount() int {
	return b.pills
}

func (b *Board) OccupiedCount() int {
	return b.occupied
}

// Free lists unoccupied locations in row-major order.
func (b *Board) Free() []Location {
	free := make([]Location, 0, len(b.cells)-b.occupied)
	for _, c := range b.cells {
		if c.OccupiedBy == nil {
			free = append(free, c.Location)
		}
	}
	return free
}

// Cells returns a row-major copy of every cell.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}
