package server

import (
	"fmt"
	"sync/atomic"
)

type Phase int32

const (
	Joining Phase = iota
	Eating
	Battle
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Joining:
		return "Joining"
	case Eating:
		return "Eating"
	case Battle:
		return "Battle"
	case GameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("n/a:%d", int32(p))
	}
}

// phaseMachine holds the current phase in an atomic so reads never wait on the
// world lock. Every transition is issued by a caller already holding that lock.
type phaseMachine struct {
	v atomic.Int32
}

func (m *phaseMachine) Read() Phase {
	return Phase(m.v.Load())
}

func (m *phaseMachine) move(from, to Phase) bool {
	return m.v.CompareAndSwap(int32(from), int32(to))
}

// toEating starts a round, either fresh or as a restart after GameOver.
func (m *phaseMachine) toEating() bool {
	return m.move(Joining, Eating) || m.move(GameOver, Eating)
}

func (m *phaseMachine) toBattle() bool {
	return m.move(Eating, Battle)
}

// toGameOver ends a running round. Battle may be skipped when eating ends
// with a single player left.
func (m *phaseMachine) toGameOver() bool {
	return m.move(Eating, GameOver) || m.move(Battle, GameOver)
}

func (m *phaseMachine) toJoining() Phase {
	return Phase(m.v.Swap(int32(Joining)))
}

// Advance steps one phase forward. GameOver wraps to Eating.
func (m *phaseMachine) Advance() bool {
	switch m.Read() {
	case Joining:
		return m.toEating()
	case Eating:
		return m.toBattle()
	case Battle:
		return m.toGameOver()
	case GameOver:
		return m.toEating()
	}
	return false
}
