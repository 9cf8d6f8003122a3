package server

import (
	"sort"

	"github.com/zucenko/hungry/model"
)

// registry keeps players in join order. Players survive rounds until they go a
// whole round without joining or moving.
type registry struct {
	players []*model.Player
	byToken map[string]*model.Player
	active  map[*model.Player]struct{}
	lastId  int
}

func newRegistry() registry {
	return registry{
		byToken: make(map[string]*model.Player),
		active:  make(map[*model.Player]struct{}),
	}
}

func (r *registry) add(name, token string) *model.Player {
	r.lastId++
	p := &model.Player{Id: r.lastId, Name: name, Token: token}
	r.players = append(r.players, p)
	r.byToken[token] = p
	return p
}

func (r *registry) lookup(token string) (*model.Player, bool) {
	p, ok := r.byToken[token]
	return p, ok
}

func (r *registry) len() int {
	return len(r.players)
}

func (r *registry) all() []*model.Player {
	return r.players
}

func (r *registry) markActive(p *model.Player) {
	r.active[p] = struct{}{}
}

// pruneInactive drops players not marked active since the last prune and
// starts a fresh activity window.
func (r *registry) pruneInactive() []*model.Player {
	var dropped []*model.Player
	kept := r.players[:0]
	for _, p := range r.players {
		if _, ok := r.active[p]; ok {
			kept = append(kept, p)
			continue
		}
		dropped = append(dropped, p)
		delete(r.byToken, p.Token)
	}
	for i := len(kept); i < len(r.players); i++ {
		r.players[i] = nil
	}
	r.players = kept
	r.active = make(map[*model.Player]struct{})
	return dropped
}

func (r *registry) resetScores() {
	for _, p := range r.players {
		p.Score = 0
	}
}

func (r *registry) byScoreDescending() []model.RedactedPlayer {
	out := make([]model.RedactedPlayer, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, model.Redact(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
