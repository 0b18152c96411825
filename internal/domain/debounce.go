package domain

// Debouncer accepts a state only after Required consecutive positive observations.
// Any negative observation resets the streak.
type Debouncer struct {
	Required int
	streak   int
}

func NewDebouncer(required int) *Debouncer {
	if required < 1 {
		required = 1
	}
	return &Debouncer{Required: required}
}

// Observe records one sample and reports whether the streak is now long enough.
func (d *Debouncer) Observe(hit bool) bool {
	if !hit {
		d.streak = 0
		return false
	}
	d.streak++
	return d.streak >= d.Required
}

func (d *Debouncer) Streak() int { return d.streak }

func (d *Debouncer) Reset() { d.streak = 0 }
