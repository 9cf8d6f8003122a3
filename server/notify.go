package server

import (
	"sync"
	"time"
)

// Notifier fans out "state changed" signals, coalesced to at most one per
// interval. A change arriving inside the window is delivered when it closes.
type Notifier struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	last     time.Time
	pending  *time.Timer
	subs     map[int]chan struct{}
	nextSub  int
}

func NewNotifier(interval time.Duration) *Notifier {
	return &Notifier{
		interval: interval,
		now:      time.Now,
		subs:     make(map[int]chan struct{}),
	}
}

func (n *Notifier) SetInterval(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.interval = d
}

func (n *Notifier) Interval() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.interval
}

// LastChanged is when subscribers were last signalled.
func (n *Notifier) LastChanged() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Subscribe returns a channel that receives a value after changes, and a
// function to stop receiving. Signals are dropped for a subscriber that has
// one pending already.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextSub
	n.nextSub++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch
	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *Notifier) Changed() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending != nil {
		return
	}
	wait := n.interval - n.now().Sub(n.last)
	if wait <= 0 {
		n.publish()
		return
	}
	n.pending = time.AfterFunc(wait, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.pending = nil
		n.publish()
	})
}

func (n *Notifier) publish() {
	n.last = n.now()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Stop cancels a pending delivery.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
}
