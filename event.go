package pixsketch

import "fmt"

// ButtonEvent is a single button transition reported by the button pad.
// Buttons are numbered 1 to 4.
type ButtonEvent uint8

const (
	EventNone ButtonEvent = iota
	Button1Down
	Button1Up
	Button2Down
	Button2Up
	Button3Down
	Button3Up
	Button4Down
	Button4Up
)

// NumButtons is the number of buttons on the pad.
const NumButtons = 4

// MakeButtonEvent returns the event for the given button number and
// direction.
func MakeButtonEvent(button int, down bool) ButtonEvent {
	if button < 1 || button > NumButtons {
		panic(fmt.Sprintf("invalid button %d", button))
	}
	ev := ButtonEvent(2*button - 1)
	if !down {
		ev++
	}
	return ev
}

// Button returns the button number of the event, or 0 for EventNone.
func (e ButtonEvent) Button() int {
	if e == EventNone {
		return 0
	}
	return (int(e) + 1) / 2
}

// Down reports whether the event is a press rather than a release.
func (e ButtonEvent) Down() bool {
	return e != EventNone && e%2 == 1
}

func (e ButtonEvent) String() string {
	switch {
	case e == EventNone:
		return "none"
	case e > Button4Up:
		return fmt.Sprintf("ButtonEvent(%d)", uint8(e))
	case e.Down():
		return fmt.Sprintf("btn%d-down", e.Button())
	default:
		return fmt.Sprintf("btn%d-up", e.Button())
	}
}
