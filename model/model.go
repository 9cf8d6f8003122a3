package model

import "fmt"

type Location struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Column)
}

// Player is the registry record. Token is the player's secret and must never
// leave the server; use RedactedPlayer for anything sent to clients.
type Player struct {
	Id    int
	Name  string
	Token string
	Score int
}

func (p *Player) String() string {
	return fmt.Sprintf("%s#%d(%d)", p.Name, p.Id, p.Score)
}

// Cell is a value; the board replaces whole cells, it never mutates one in place.
type Cell struct {
	Location        Location
	IsPillAvailable bool
	OccupiedBy      *Player
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = map[Direction]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection accepts the lowercase names used in the move routes.
func ParseDirection(s string) (Direction, bool) {
	for d, n := range directionNames {
		if n == s {
			return d, true
		}
	}
	return 0, false
}

// Delta returns the unit row/column offset. ok is false for unknown values.
func (d Direction) Delta() (dr, dc int, ok bool) {
	switch d {
	case Up:
		return -1, 0, true
	case Down:
		return 1, 0, true
	case Left:
		return 0, -1, true
	case Right:
		return 0, 1, true
	}
	return 0, 0, false
}

func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

type MoveResult struct {
	NewLocation Location `json:"newLocation"`
	AteAPill    bool     `json:"ateAPill"`
}
