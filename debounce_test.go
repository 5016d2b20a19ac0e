package pixsketch

import "testing"

func TestDebouncer(t *testing.T) {
	var d Debouncer
	pressed := [NumButtons]bool{false, false, true, false}
	released := [NumButtons]bool{}

	for i := 0; i < DebounceSamples-1; i++ {
		if ev := d.Update(pressed); ev != EventNone {
			t.Fatalf("sample %d: got %v before the level settled", i, ev)
		}
	}
	if ev := d.Update(pressed); ev != Button3Down {
		t.Fatalf("got %v, want btn3-down", ev)
	}

	// Held: no more events.
	for i := 0; i < 10; i++ {
		if ev := d.Update(pressed); ev != EventNone {
			t.Fatalf("got %v while holding", ev)
		}
	}

	// A bounce shorter than the window is ignored.
	d.Update(released)
	d.Update(pressed)
	for i := 0; i < DebounceSamples; i++ {
		if ev := d.Update(pressed); ev != EventNone {
			t.Fatalf("bounce produced %v", ev)
		}
	}

	var ev ButtonEvent
	for i := 0; i < DebounceSamples; i++ {
		ev = d.Update(released)
	}
	if ev != Button3Up {
		t.Fatalf("got %v, want btn3-up", ev)
	}
}

func TestDebouncerOneEventPerPoll(t *testing.T) {
	var d Debouncer
	all := [NumButtons]bool{true, true, true, true}

	var events []ButtonEvent
	for i := 0; i < DebounceSamples+NumButtons; i++ {
		if ev := d.Update(all); ev != EventNone {
			events = append(events, ev)
		}
	}

	want := []ButtonEvent{Button1Down, Button2Down, Button3Down, Button4Down}
	if len(events) != len(want) {
		t.Fatalf("got events %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
}
