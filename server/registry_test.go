package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zucenko/hungry/model"
)

func TestRegistryAssignsIdsInJoinOrder(t *testing.T) {
	r := newRegistry()
	a := r.add("a", "ta")
	b := r.add("b", "tb")

	require.Equal(t, 1, a.Id)
	require.Equal(t, 2, b.Id)
	require.Equal(t, []*model.Player{a, b}, r.all())

	got, ok := r.lookup("tb")
	require.True(t, ok)
	require.Same(t, b, got)
	_, ok = r.lookup("nope")
	require.False(t, ok)
}

func TestRegistryPruneInactive(t *testing.T) {
	r := newRegistry()
	a := r.add("a", "ta")
	b := r.add("b", "tb")
	c := r.add("c", "tc")
	r.markActive(a)
	r.markActive(c)

	dropped := r.pruneInactive()
	require.Equal(t, []*model.Player{b}, dropped)
	require.Equal(t, []*model.Player{a, c}, r.all())
	_, ok := r.lookup("tb")
	require.False(t, ok)

	// the activity window restarts
	dropped = r.pruneInactive()
	require.Len(t, dropped, 2)
	require.Equal(t, 0, r.len())
}

func TestRegistryByScoreDescending(t *testing.T) {
	r := newRegistry()
	r.add("low", "1").Score = 1
	r.add("high", "2").Score = 9
	r.add("mid", "3").Score = 5
	r.add("also-mid", "4").Score = 5

	got := r.byScoreDescending()
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"high", "mid", "also-mid", "low"}, names)

	r.resetScores()
	for _, p := range r.byScoreDescending() {
		require.Zero(t, p.Score)
	}
}
