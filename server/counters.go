package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zucenko/hungry/model"
)

const meterName = "github.com/zucenko/hungry/server"

// Counters reports per-player activity. The zero value is not usable; build
// one with NewCounters.
type Counters struct {
	moves          metric.Int64Counter
	horizontal     metric.Int64Counter
	vertical       metric.Int64Counter
	pills          metric.Int64Counter
	score          metric.Int64Counter
	attacks        metric.Int64Counter
	attacksPerGame metric.Int64Counter
	kills          metric.Int64Counter
}

func NewCounters(provider metric.MeterProvider) (*Counters, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)
	c := &Counters{}
	for _, def := range []struct {
		counter *metric.Int64Counter
		name    string
		desc    string
	}{
		{&c.moves, "moves_per_player_total", "Total number of moves per player"},
		{&c.horizontal, "horizontal_moves_per_player_total", "Total number of horizontal moves per player"},
		{&c.vertical, "vertical_moves_per_player_total", "Total number of vertical moves per player"},
		{&c.pills, "pills_eaten_per_player_total", "Total number of pills eaten per player"},
		{&c.score, "score_per_player_total", "Total score per player"},
		{&c.attacks, "attacks_per_player_total", "Total number of attacks per player"},
		{&c.attacksPerGame, "attacks_per_game_total", "Total number of attacks per game"},
		{&c.kills, "kills_per_player_total", "Total number of kills per player"},
	} {
		counter, err := meter.Int64Counter(def.name, metric.WithDescription(def.desc))
		if err != nil {
			return nil, err
		}
		*def.counter = counter
	}
	return c, nil
}

func playerAttrs(p *model.Player) metric.AddOption {
	return metric.WithAttributes(
		attribute.Int("player.id", p.Id),
		attribute.String("player.name", p.Name),
	)
}

func (c *Counters) direction(p *model.Player, d model.Direction) {
	if d.Vertical() {
		c.vertical.Add(context.Background(), 1, playerAttrs(p))
	} else {
		c.horizontal.Add(context.Background(), 1, playerAttrs(p))
	}
}

func (c *Counters) moved(p *model.Player) {
	c.moves.Add(context.Background(), 1, playerAttrs(p))
}

func (c *Counters) ate(p *model.Player, value int) {
	ctx := context.Background()
	c.pills.Add(ctx, 1, playerAttrs(p))
	c.score.Add(ctx, int64(value), playerAttrs(p))
}

func (c *Counters) attacked(p *model.Player) {
	ctx := context.Background()
	c.attacks.Add(ctx, 1, playerAttrs(p))
	c.attacksPerGame.Add(ctx, 1)
}

func (c *Counters) killed(p *model.Player) {
	c.kills.Add(context.Background(), 1, playerAttrs(p))
}
