package pixsketch

import (
	"math"
	"testing"
)

func TestButtonEvent(t *testing.T) {
	tests := []struct {
		event  ButtonEvent
		button int
		down   bool
		str    string
	}{
		{EventNone, 0, false, "none"},
		{Button1Down, 1, true, "btn1-down"},
		{Button1Up, 1, false, "btn1-up"},
		{Button2Down, 2, true, "btn2-down"},
		{Button2Up, 2, false, "btn2-up"},
		{Button3Down, 3, true, "btn3-down"},
		{Button3Up, 3, false, "btn3-up"},
		{Button4Down, 4, true, "btn4-down"},
		{Button4Up, 4, false, "btn4-up"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.event.Button(); got != tt.button {
				t.Errorf("Button() = %d, want %d", got, tt.button)
			}
			if got := tt.event.Down(); got != tt.down {
				t.Errorf("Down() = %v, want %v", got, tt.down)
			}
			if got := tt.event.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if tt.button != 0 {
				if got := MakeButtonEvent(tt.button, tt.down); got != tt.event {
					t.Errorf("MakeButtonEvent(%d, %v) = %v", tt.button, tt.down, got)
				}
			}
		})
	}
}

func TestButtonEventInvalid(t *testing.T) {
	if s := ButtonEvent(9).String(); s != "ButtonEvent(9)" {
		t.Errorf("String() = %q", s)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for button 5")
		}
	}()
	MakeButtonEvent(5, true)
}

func TestStateMailbox(t *testing.T) {
	var s State

	s.Deposit(EventNone)
	if s.Pending() != EventNone {
		t.Fatal("EventNone was deposited")
	}

	s.Deposit(Button1Down)
	s.Deposit(EventNone)
	if s.Pending() != Button1Down {
		t.Fatalf("Pending() = %v, want btn1-down", s.Pending())
	}

	s.Deposit(Button2Down)
	if s.Pending() != Button2Down {
		t.Fatalf("Pending() = %v, want the newest event", s.Pending())
	}

	// An event arriving while btn1-down was being handled survives.
	s.Drain(Button1Down)
	if s.Pending() != Button2Down {
		t.Fatalf("Drain removed a newer event")
	}

	s.Drain(Button2Down)
	if s.Pending() != EventNone {
		t.Fatalf("Pending() = %v after drain", s.Pending())
	}
}

func TestStatePressCounter(t *testing.T) {
	var s State

	s.Tick()
	s.Tick()
	if n := s.PressTicks(); n != 2 {
		t.Fatalf("PressTicks() = %d, want 2", n)
	}

	s.ResetPress()
	if n := s.PressTicks(); n != 0 {
		t.Fatalf("PressTicks() = %d after reset", n)
	}

	s.press.Store(math.MaxUint32 - 1)
	s.Tick()
	s.Tick()
	if n := s.PressTicks(); n != math.MaxUint32 {
		t.Fatalf("counter wrapped to %d", n)
	}
}
