package model

import "time"

type RedactedPlayer struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func Redact(p *Player) RedactedPlayer {
	return RedactedPlayer{Id: p.Id, Name: p.Name, Score: p.Score}
}

type RedactedCell struct {
	Location        Location        `json:"location"`
	IsPillAvailable bool            `json:"isPillAvailable"`
	OccupiedBy      *RedactedPlayer `json:"occupiedBy,omitempty"`
}

// RedactCells strips player tokens from cells.
func RedactCells(cells []Cell) []RedactedCell {
	out := make([]RedactedCell, 0, len(cells))
	for _, c := range cells {
		rc := RedactedCell{Location: c.Location, IsPillAvailable: c.IsPillAvailable}
		if c.OccupiedBy != nil {
			p := Redact(c.OccupiedBy)
			rc.OccupiedBy = &p
		}
		out = append(out, rc)
	}
	return out
}

// BoardMessage is pushed to watchers after every coalesced change.
type BoardMessage struct {
	Phase      string           `json:"phase"`
	GameEndsOn *time.Time       `json:"gameEndsOn,omitempty"`
	Cells      []RedactedCell   `json:"cells"`
	Players    []RedactedPlayer `json:"players"`
}

type TimeInfo struct {
	GameEndsOn       *time.Time `json:"gameEndsOn,omitempty"`
	SecondsRemaining *float64   `json:"secondsRemaining,omitempty"`
}
