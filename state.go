package pixsketch

import (
	"math"
	"sync/atomic"
)

// State is the state shared between the tick handlers and the main loop.
// Each field has a single writer on the producing side:
//
//   - the pending event is written by the fast tick and drained by the main
//     loop;
//   - the press counter is advanced by the slow tick and reset by the main
//     loop.
//
// The mailbox holds one event. A newer event replaces one the main loop has
// not handled yet, so fast presses can be lost. Unlike a tick that stores
// every poll result, an empty poll does not clear the mailbox: an event is
// lost only to a newer event, never to a quiet tick.
type State struct {
	pending atomic.Uint32
	press   atomic.Uint32
}

// Deposit puts ev into the mailbox, replacing any event the main loop has
// not drained yet. EventNone is not deposited.
func (s *State) Deposit(ev ButtonEvent) {
	if ev != EventNone {
		s.pending.Store(uint32(ev))
	}
}

// Pending returns the event waiting in the mailbox.
func (s *State) Pending() ButtonEvent {
	return ButtonEvent(s.pending.Load())
}

// Drain empties the mailbox if it still holds ev. An event deposited after ev
// was read stays in place.
func (s *State) Drain(ev ButtonEvent) {
	s.pending.CompareAndSwap(uint32(ev), uint32(EventNone))
}

// Tick advances the press counter. It saturates instead of wrapping.
func (s *State) Tick() {
	for {
		n := s.press.Load()
		if n == math.MaxUint32 || s.press.CompareAndSwap(n, n+1) {
			return
		}
	}
}

// ResetPress restarts the press counter.
func (s *State) ResetPress() {
	s.press.Store(0)
}

// PressTicks returns the number of slow ticks since the last reset.
func (s *State) PressTicks() uint32 {
	return s.press.Load()
}
