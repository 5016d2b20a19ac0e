package pixsketch

// DebounceSamples is the number of identical consecutive samples needed
// before a button is considered pressed or released.
const DebounceSamples = 4

const debounceMask = 1<<DebounceSamples - 1

// Debouncer turns raw button levels sampled at a fixed rate into button
// events. The zero value has every button released.
type Debouncer struct {
	history [NumButtons]uint8
	down    [NumButtons]bool
}

// Update records one sample of the raw button levels, index 0 being button 1,
// and returns at most one transition. When several buttons settle on the same
// sample, the lowest numbered one is reported and the others follow on later
// calls.
func (d *Debouncer) Update(levels [NumButtons]bool) ButtonEvent {
	for i, level := range levels {
		d.history[i] <<= 1
		if level {
			d.history[i] |= 1
		}
	}

	for i := range d.history {
		switch h := d.history[i] & debounceMask; {
		case h == debounceMask && !d.down[i]:
			d.down[i] = true
			return MakeButtonEvent(i+1, true)
		case h == 0 && d.down[i]:
			d.down[i] = false
			return MakeButtonEvent(i+1, false)
		}
	}

	return EventNone
}
