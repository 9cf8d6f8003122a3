package server

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"

	"golang.org/x/exp/rand"
)

// Random is the source used for seating. Implementations need not be safe for
// concurrent use; the game only calls it under the world lock.
type Random interface {
	Intn(n int) int
}

// NewRandom returns a PCG-backed generator seeded from crypto/rand.
func NewRandom() Random {
	return rand.New(rand.NewSource(newSeed()))
}

func newSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
