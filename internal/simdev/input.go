package simdev

import (
	"sync"
	"sync/atomic"

	"libdb.so/pixsketch"
)

// EventQueue is a button pad fed with ready-made events. Each Poll returns
// the oldest queued event.
type EventQueue struct {
	mu     sync.Mutex
	events []pixsketch.ButtonEvent
}

var _ pixsketch.Buttons = (*EventQueue)(nil)

// Push queues events.
func (q *EventQueue) Push(events ...pixsketch.ButtonEvent) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

// Len returns the number of events not polled yet.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Poll implements pixsketch.Buttons.
func (q *EventQueue) Poll() pixsketch.ButtonEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return pixsketch.EventNone
	}

	ev := q.events[0]
	q.events = q.events[1:]
	return ev
}

// Pad is a button pad fed with raw levels, as read from keys or pins. Levels
// go through a pixsketch.Debouncer on every Poll.
type Pad struct {
	levels [pixsketch.NumButtons]atomic.Bool
	deb    pixsketch.Debouncer
}

var _ pixsketch.Buttons = (*Pad)(nil)

// Set sets the raw level of a button (1 to 4).
func (p *Pad) Set(button int, down bool) {
	p.levels[button-1].Store(down)
}

// Poll implements pixsketch.Buttons.
func (p *Pad) Poll() pixsketch.ButtonEvent {
	var levels [pixsketch.NumButtons]bool
	for i := range levels {
		levels[i] = p.levels[i].Load()
	}
	return p.deb.Update(levels)
}

// Knob is a potentiometer. The reading is clamped to the 16-bit range.
type Knob struct {
	value   atomic.Int32
	changed atomic.Bool
}

var _ pixsketch.Analog = (*Knob)(nil)

// Set turns the knob to v.
func (k *Knob) Set(v int) {
	v = max(0, min(v, 0xFFFF))
	if k.value.Swap(int32(v)) != int32(v) {
		k.changed.Store(true)
	}
}

// Turn turns the knob by delta.
func (k *Knob) Turn(delta int) {
	k.Set(int(k.value.Load()) + delta)
}

// Changed implements pixsketch.Analog.
func (k *Knob) Changed() bool {
	return k.changed.Swap(false)
}

// Read implements pixsketch.Analog.
func (k *Knob) Read() uint16 {
	return uint16(k.value.Load())
}

// Switch is a toggle switch.
type Switch struct {
	on atomic.Bool
}

var _ pixsketch.Switch = (*Switch)(nil)

// Set sets the switch position.
func (s *Switch) Set(on bool) { s.on.Store(on) }

// Toggle flips the switch and returns the new position.
func (s *Switch) Toggle() bool {
	for {
		on := s.on.Load()
		if s.on.CompareAndSwap(on, !on) {
			return !on
		}
	}
}

// Get implements pixsketch.Switch.
func (s *Switch) Get() bool { return s.on.Load() }
